// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hypervisor

import (
	"strconv"

	"github.com/ava-labs/hypervm/message"
)

// Bookkeeping keys live in the transaction's manager namespace, which the
// storage layer keeps disjoint from every account's own storage. Only the
// dispatcher writes these keys.
var (
	// nextAccountIDKey holds the persisted account-id counter as a
	// little-endian uint64.
	nextAccountIDKey = []byte("next_account_id")

	// handlerKeyTag prefixes per-account handler mappings so they can never
	// collide with the counter key.
	handlerKeyTag = []byte("h:")
)

// accountHandlerKey is the key an account's HandlerID mapping is stored
// under: the reserved tag followed by the decimal account id.
func accountHandlerKey(account message.AccountID) []byte {
	return strconv.AppendUint(append([]byte{}, handlerKeyTag...), uint64(account), 10)
}
