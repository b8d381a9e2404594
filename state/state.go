// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/versiondb"

	"github.com/ava-labs/hypervm/hypervisor"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database
	// objects: the manager namespace must never collide with any account's
	// own storage.
	managerStatePrefix = []byte("manager")
	accountStatePrefix = []byte("account")

	_ hypervisor.StateHandler = (*Handler)(nil)
)

// Handler is a transactional, frame-scoped store over any
// database.Database. Each transaction stages every write in memory; nothing
// reaches the backing store before Commit.
type Handler struct {
	db database.Database
}

// NewHandler returns a state handler backed by [db].
func NewHandler(db database.Database) *Handler {
	return &Handler{db: db}
}

// NewMemHandler returns a state handler over a fresh in-memory database.
func NewMemHandler() *Handler {
	return NewHandler(memdb.New())
}

// NewTransaction opens a transaction staging over the backing store.
func (h *Handler) NewTransaction() hypervisor.Transaction {
	return &transaction{base: versiondb.New(h.db)}
}

// Commit merges any frames still on the stack into the base, top down, then
// flushes the base to the backing store.
func (h *Handler) Commit(tx hypervisor.Transaction) error {
	t := tx.(*transaction)
	for i := len(t.frames) - 1; i >= 0; i-- {
		if err := t.frames[i].db.Commit(); err != nil {
			return err
		}
	}
	t.frames = nil
	return t.base.Commit()
}
