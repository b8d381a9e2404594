// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hypervisor

import (
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/version"

	"github.com/ava-labs/hypervm/message"
	"github.com/ava-labs/hypervm/vm"
)

const Name = "hypervm"

// Version is the host's version
var Version = version.NewDefaultVersion(0, 1, 0)

// StateHandler is the transactional byte-store the hypervisor runs over.
// The engine is generic over it; any store that can scope writes to frames
// and commit or discard them atomically will do.
type StateHandler interface {
	// NewTransaction opens the unit of atomicity for one top-level invoke.
	NewTransaction() Transaction

	// Commit makes every write of the transaction durable, across all of
	// its frames.
	Commit(tx Transaction) error
}

// Transaction owns the frame stack for one top-level invoke. It terminates
// exactly once, through StateHandler.Commit or Rollback.
type Transaction interface {
	// InitAccountStorage prepares a new account's storage namespace with the
	// handler's declared storage parameters.
	InitAccountStorage(account message.AccountID, storageParams []byte) error

	// PushFrame appends a frame executing as [account]. It fails if the
	// push would violate the store's volatility-nesting rule, leaving the
	// stack untouched.
	PushFrame(account message.AccountID, volatile bool) error

	// PopFrame removes the top frame, committing its writes into the frame
	// below iff [commit], discarding them otherwise. It fails if the stack
	// is empty.
	PopFrame(commit bool) error

	// ActiveAccount is the account of the top frame.
	ActiveAccount() message.AccountID

	// ManagerState is the bookkeeping namespace reserved for the hypervisor,
	// disjoint from every account's own storage.
	ManagerState() KVStore

	// Rollback discards every write of the transaction, across all frames.
	Rollback()
}

// KVStore is a mutable byte-keyed store.
type KVStore interface {
	Get(key []byte) ([]byte, bool)
	Set(key, value []byte)
	Delete(key []byte)
}

// AccountStateProvider is an optional Transaction extension implemented by
// storage backends that can hand in-process VMs direct access to an
// account's own storage. Guest VMs normally reach storage through their own
// bridge instead.
type AccountStateProvider interface {
	AccountState(account message.AccountID) KVStore
}

// Hypervisor routes cross-account messages to registered VMs, wrapping each
// top-level invocation in a transaction with nested, rollback-capable call
// frames.
type Hypervisor struct {
	registry *vm.Registry
	state    StateHandler
}

// New returns a hypervisor executing over [state] and dispatching to the
// VMs in [registry]. The registry must already be frozen.
func New(state StateHandler, registry *vm.Registry) *Hypervisor {
	return &Hypervisor{
		registry: registry,
		state:    state,
	}
}

// Invoke executes one inbound packet. On success every nested write has
// been committed; on error the transaction has been fully rolled back. No
// partial commit is ever observable.
func (h *Hypervisor) Invoke(packet *message.Packet) error {
	tx := h.state.NewTransaction()

	// the root frame executes as the declared sender; dispatch authorizes
	// every message against it
	if err := tx.PushFrame(packet.Sender(), false); err != nil {
		log.Error("root frame rejected", "sender", packet.Sender(), "err", err)
		tx.Rollback()
		return message.ErrInvalidHandler
	}

	ec := newExecContext(h.registry, tx)
	if err := ec.Invoke(packet); err != nil {
		tx.Rollback()
		return err
	}

	if err := h.state.Commit(tx); err != nil {
		log.Error("transaction commit failed", "sender", packet.Sender(), "err", err)
		tx.Rollback()
		return message.ErrFatalExecution
	}
	return nil
}
