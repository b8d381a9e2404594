// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/utils/hashing"
)

// NewSelector derives the 64-bit dispatch key for a stable method name of
// the form namespace.version.method.
func NewSelector(name string) uint64 {
	return binary.LittleEndian.Uint64(hashing.ComputeHash256([]byte(name))[:8])
}

// Selectors reserved for the account lifecycle.
var (
	// CreateSelector requests creation of a new account. Only valid on
	// messages targeting the null account.
	CreateSelector = NewSelector("hypervm.account.v1.create")

	// OnCreateSelector is the lifecycle hook run against a freshly created
	// account. Accounts are not required to implement it.
	OnCreateSelector = NewSelector("hypervm.account.v1.on_create")
)
