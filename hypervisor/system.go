// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hypervisor

import (
	"encoding/binary"
	"errors"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/hypervm/message"
	"github.com/ava-labs/hypervm/vm"
)

// handleSystemMessage runs the bootstrap protocol for messages addressed to
// the null account. The only known selector is account creation; anything
// else is rejected before any work is done.
//
// The caller holds ec.mu; this routine releases it on every path.
func (ec *execContext) handleSystemMessage(packet *message.Packet) error {
	if packet.Selector() != message.CreateSelector {
		ec.mu.Unlock()
		return message.ErrHandlerNotFound
	}

	rawHandlerID := packet.InData(0)
	initData := packet.InData(1)

	handlerID, ok := vm.ParseHandlerID(rawHandlerID)
	if !ok {
		ec.mu.Unlock()
		return message.ErrHandlerNotFound
	}
	backend, ok := ec.registry.Lookup(handlerID.VM)
	if !ok {
		ec.mu.Unlock()
		return message.ErrHandlerNotFound
	}
	descriptor, ok := backend.DescribeHandler(handlerID.Handler)
	if !ok {
		ec.mu.Unlock()
		return message.ErrHandlerNotFound
	}

	account := ec.nextAccountID()
	if err := ec.tx.InitAccountStorage(account, descriptor.StorageParams); err != nil {
		log.Error("account storage init failed", "account", account, "err", err)
		ec.mu.Unlock()
		return message.ErrFatalExecution
	}
	// record the mapping dispatch reads on every message to this account
	ec.tx.ManagerState().Set(accountHandlerKey(account), handlerID.Bytes())

	// the on_create hook runs as the new account, so nested invokes it makes
	// pass the active-frame check
	onCreate := message.NewPacket(account, account, message.OnCreateSelector)
	onCreate.SetInData(0, initData)

	if err := ec.tx.PushFrame(account, true); err != nil {
		ec.mu.Unlock()
		return message.ErrInvalidHandler
	}

	ec.mu.Unlock()
	err := backend.RunHandler(handlerID.Handler, onCreate, ec)
	if !ec.mu.TryLock() {
		return message.ErrFatalExecution
	}
	defer ec.mu.Unlock()

	if popErr := ec.tx.PopFrame(err == nil); popErr != nil {
		log.Error("bootstrap frame pop failed", "account", account, "err", popErr)
		return message.ErrFatalExecution
	}

	// accounts are not required to implement on_create; the account still
	// exists with initialized storage
	if err != nil && !errors.Is(err, message.ErrMessageNotHandled) {
		return err
	}
	log.Info("created account", "account", account, "handler", handlerID.String())
	return nil
}

// nextAccountID allocates from the persisted, strictly monotonic counter.
// User accounts start at FirstUserAccount; everything below is reserved.
func (ec *execContext) nextAccountID() message.AccountID {
	kv := ec.tx.ManagerState()

	id := uint64(message.FirstUserAccount)
	if raw, ok := kv.Get(nextAccountIDKey); ok && len(raw) == 8 {
		id = binary.LittleEndian.Uint64(raw)
	}

	next := make([]byte, 8)
	binary.LittleEndian.PutUint64(next, id+1)
	kv.Set(nextAccountIDKey, next)

	return message.AccountID(id)
}
