// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nativevm

import (
	"github.com/ava-labs/hypervm/hypervisor"
	"github.com/ava-labs/hypervm/message"
	"github.com/ava-labs/hypervm/vm"
)

// Name is the registry name this VM is conventionally registered under.
const Name = "native"

var _ vm.VM = (*VM)(nil)

// Env is everything a native handler gets for one call.
type Env struct {
	Packet *message.Packet
	Host   vm.HostBackend

	// Storage is the executing account's own store, or nil when the backend
	// does not expose one.
	Storage hypervisor.KVStore
}

// HandlerFunc implements one selector of a handler.
type HandlerFunc func(env *Env) error

// Handler is one account behavior: a selector-routed set of functions plus
// the static descriptor reported to the hypervisor.
type Handler struct {
	descriptor vm.HandlerDescriptor
	routes     map[uint64]HandlerFunc
}

// On routes [selector] to [fn]. Chainable.
func (h *Handler) On(selector uint64, fn HandlerFunc) *Handler {
	h.routes[selector] = fn
	return h
}

// VM runs handlers written as ordinary Go functions, in-process. Useful for
// system accounts and tests; guest execution engines implement vm.VM
// against their own runtimes instead.
type VM struct {
	handlers map[string]*Handler
}

// New ...
func New() *VM {
	return &VM{handlers: make(map[string]*Handler)}
}

// RegisterHandler creates the handler known as [handlerID] inside this VM.
// All registration happens before the VM itself is registered and frozen
// into a registry.
func (n *VM) RegisterHandler(handlerID string, descriptor vm.HandlerDescriptor) *Handler {
	h := &Handler{
		descriptor: descriptor,
		routes:     make(map[uint64]HandlerFunc),
	}
	n.handlers[handlerID] = h
	return h
}

// RunHandler implements vm.VM.
func (n *VM) RunHandler(handlerID string, packet *message.Packet, host vm.HostBackend) error {
	h, ok := n.handlers[handlerID]
	if !ok {
		return message.ErrHandlerNotFound
	}
	fn, ok := h.routes[packet.Selector()]
	if !ok {
		return message.ErrMessageNotHandled
	}

	env := &Env{Packet: packet, Host: host}
	if provider, ok := host.(interface {
		ActiveAccountState() (hypervisor.KVStore, bool)
	}); ok {
		if store, ok := provider.ActiveAccountState(); ok {
			env.Storage = store
		}
	}
	return fn(env)
}

// DescribeHandler implements vm.VM.
func (n *VM) DescribeHandler(handlerID string) (vm.HandlerDescriptor, bool) {
	h, ok := n.handlers[handlerID]
	if !ok {
		return vm.HandlerDescriptor{}, false
	}
	return h.descriptor, true
}
