// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
	"sort"
)

var (
	errDuplicateVM   = errors.New("vm already registered with this name")
	errFrozenBuilder = errors.New("registry builder already frozen")
)

// RegistryBuilder collects VMs by name before the registry is published.
// It is the mutable half of a construct-then-freeze lifecycle: once Freeze
// is called the builder is dead and the returned Registry is immutable.
type RegistryBuilder struct {
	vms    map[string]VM
	frozen bool
}

// NewRegistryBuilder ...
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{vms: make(map[string]VM)}
}

// Register adds [backend] under [name]. Registration fails once the builder
// has been frozen or if the name is taken.
func (b *RegistryBuilder) Register(name string, backend VM) error {
	if b.frozen {
		return errFrozenBuilder
	}
	if _, ok := b.vms[name]; ok {
		return errDuplicateVM
	}
	b.vms[name] = backend
	return nil
}

// Freeze publishes the collected VMs as an immutable registry. The builder
// rejects all further registrations.
func (b *RegistryBuilder) Freeze() *Registry {
	b.frozen = true
	return &Registry{vms: b.vms}
}

// Registry is a read-only, name-keyed collection of VMs. It is safe to
// share across concurrent invocations because nothing mutates it after
// Freeze.
type Registry struct {
	vms map[string]VM
}

// Lookup returns the VM registered under [name].
func (r *Registry) Lookup(name string) (VM, bool) {
	backend, ok := r.vms[name]
	return backend, ok
}

// Names returns the registered VM names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.vms))
	for name := range r.vms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
