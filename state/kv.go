// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/ava-labs/avalanchego/database"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/hypervm/hypervisor"
)

var _ hypervisor.KVStore = (*kvAdapter)(nil)

// kvAdapter narrows a database.Database to the hypervisor's KVStore
// contract. The staged stores used here only fail on programming errors, so
// write failures are logged rather than surfaced.
type kvAdapter struct {
	db database.Database
}

func (k *kvAdapter) Get(key []byte) ([]byte, bool) {
	value, err := k.db.Get(key)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (k *kvAdapter) Set(key, value []byte) {
	if err := k.db.Put(key, value); err != nil {
		log.Error("state write failed", "err", err)
	}
}

func (k *kvAdapter) Delete(key []byte) {
	if err := k.db.Delete(key); err != nil {
		log.Error("state delete failed", "err", err)
	}
}
