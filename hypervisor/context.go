// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hypervisor

import (
	"sync"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/hypervm/message"
	"github.com/ava-labs/hypervm/vm"
)

var _ vm.HostBackend = (*execContext)(nil)

// execContext is the host-side callback surface for one transaction. It is
// the recursive dispatcher: VMs re-enter Invoke through it for nested calls.
//
// The mutex guards the transaction. It is held while dispatch touches the
// frame stack and released while a handler runs, so nested invokes recurse
// through the same routine. A second concurrent holder is a programming
// error, not a transient condition, and surfaces as a fatal error.
type execContext struct {
	registry *vm.Registry
	tx       Transaction
	mu       sync.Mutex
}

func newExecContext(registry *vm.Registry, tx Transaction) *execContext {
	return &execContext{
		registry: registry,
		tx:       tx,
	}
}

// Invoke authorizes, routes, and dispatches one packet within the
// transaction. Reachable from the root call and from VM callbacks.
func (ec *execContext) Invoke(packet *message.Packet) error {
	if !ec.mu.TryLock() {
		return message.ErrFatalExecution
	}

	// a handler may only originate messages as the account it is presently
	// executing for; this is the system's sole authorization primitive
	if packet.Sender() != ec.tx.ActiveAccount() {
		ec.mu.Unlock()
		return message.ErrUnauthorizedCaller
	}

	target := packet.Target()
	if target.IsNull() {
		return ec.handleSystemMessage(packet) // releases the lock itself
	}

	handlerID, ok := ec.lookupHandlerID(target)
	if !ok {
		ec.mu.Unlock()
		return message.ErrHandlerNotFound
	}
	backend, ok := ec.registry.Lookup(handlerID.VM)
	if !ok {
		ec.mu.Unlock()
		return message.ErrHandlerNotFound
	}

	if err := ec.tx.PushFrame(target, false); err != nil {
		ec.mu.Unlock()
		return message.ErrInvalidHandler
	}
	log.Debug("dispatching message",
		"sender", packet.Sender(),
		"target", target,
		"selector", packet.Selector(),
		"vm", handlerID.VM,
	)

	ec.mu.Unlock()
	err := backend.RunHandler(handlerID.Handler, packet, ec)
	if !ec.mu.TryLock() {
		return message.ErrFatalExecution
	}
	defer ec.mu.Unlock()

	if popErr := ec.tx.PopFrame(err == nil); popErr != nil {
		log.Error("frame pop failed", "target", target, "err", popErr)
		return message.ErrFatalExecution
	}
	return err
}

// Allocate is a direct pass-through to the ambient allocator. There is no
// arena, quota, or per-frame accounting.
func (ec *execContext) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, message.ErrFatalExecution
	}
	return make([]byte, size), nil
}

// ActiveAccountState returns the active account's own storage when the
// transaction supports direct access. In-process VMs use this in place of a
// guest-side storage bridge.
func (ec *execContext) ActiveAccountState() (KVStore, bool) {
	provider, ok := ec.tx.(AccountStateProvider)
	if !ok {
		return nil, false
	}
	return provider.AccountState(ec.tx.ActiveAccount()), true
}

func (ec *execContext) lookupHandlerID(account message.AccountID) (vm.HandlerID, bool) {
	value, ok := ec.tx.ManagerState().Get(accountHandlerKey(account))
	if !ok {
		return vm.HandlerID{}, false
	}
	return vm.ParseHandlerID(value)
}
