// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"

	"github.com/ava-labs/hypervm/hypervisor"
	"github.com/ava-labs/hypervm/message"
)

// StorageParamsKey holds the handler's declared storage parameters inside
// an account's namespace. It is written once, at account creation.
var StorageParamsKey = []byte("storage_params")

var (
	// ErrNoFrames: pop on an empty frame stack.
	ErrNoFrames = errors.New("no frames to pop")

	// ErrVolatileEscape: tried to push a non-volatile frame on top of a
	// volatile frame. Writes staged under a volatile frame must never
	// outlive it through a non-volatile child.
	ErrVolatileEscape = errors.New("non-volatile frame above a volatile frame")

	_ hypervisor.Transaction          = (*transaction)(nil)
	_ hypervisor.AccountStateProvider = (*transaction)(nil)
)

// frame is one entry of the call stack. Its writes stage in their own
// version layer over the frame (or transaction base) below.
type frame struct {
	account  message.AccountID
	volatile bool
	db       *versiondb.Database
}

type transaction struct {
	base   *versiondb.Database
	frames []frame
}

// top is the store writes currently land in.
func (t *transaction) top() database.Database {
	if len(t.frames) == 0 {
		return t.base
	}
	return t.frames[len(t.frames)-1].db
}

func (t *transaction) PushFrame(account message.AccountID, volatile bool) error {
	if !volatile && len(t.frames) > 0 && t.frames[len(t.frames)-1].volatile {
		return ErrVolatileEscape
	}
	layer := versiondb.New(t.top())
	t.frames = append(t.frames, frame{
		account:  account,
		volatile: volatile,
		db:       layer,
	})
	return nil
}

func (t *transaction) PopFrame(commit bool) error {
	if len(t.frames) == 0 {
		return ErrNoFrames
	}
	popped := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]
	if commit {
		return popped.db.Commit()
	}
	popped.db.Abort()
	return nil
}

func (t *transaction) ActiveAccount() message.AccountID {
	if len(t.frames) == 0 {
		return message.NullAccount
	}
	return t.frames[len(t.frames)-1].account
}

func (t *transaction) InitAccountStorage(account message.AccountID, storageParams []byte) error {
	return t.accountDB(account).Put(StorageParamsKey, storageParams)
}

func (t *transaction) ManagerState() hypervisor.KVStore {
	return &kvAdapter{db: prefixdb.New(managerStatePrefix, t.top())}
}

// AccountState exposes [account]'s own storage, scoped to the active frame.
func (t *transaction) AccountState(account message.AccountID) hypervisor.KVStore {
	return &kvAdapter{db: t.accountDB(account)}
}

func (t *transaction) Rollback() {
	for i := len(t.frames) - 1; i >= 0; i-- {
		t.frames[i].db.Abort()
	}
	t.frames = nil
	t.base.Abort()
}

func (t *transaction) accountDB(account message.AccountID) database.Database {
	return prefixdb.New(accountKey(account), prefixdb.New(accountStatePrefix, t.top()))
}

func accountKey(account message.AccountID) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(account))
	return key
}
