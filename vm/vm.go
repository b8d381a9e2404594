// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/hypervm/message"
)

// VM is the capability surface a pluggable execution engine implements.
// Implementations must be safe for concurrent use once registered: the
// hypervisor shares one instance across independent transactions.
type VM interface {
	// RunHandler executes the handler identified by [handlerID] against
	// [packet]. [host] lets the handler issue nested invocations and
	// allocate buffers for the duration of the call.
	RunHandler(handlerID string, packet *message.Packet, host HostBackend) error

	// DescribeHandler returns the static metadata for [handlerID], or false
	// if the VM does not know it.
	DescribeHandler(handlerID string) (HandlerDescriptor, bool)
}

// HandlerDescriptor is a handler's static metadata.
type HandlerDescriptor struct {
	// StorageParams are passed to the storage layer when an account backed
	// by this handler is created.
	StorageParams []byte
}

// HostBackend is the host-side callback surface a VM may call back into
// while running a handler.
type HostBackend interface {
	// Invoke dispatches a nested message. The packet's sender must be the
	// account the calling handler is executing as.
	Invoke(packet *message.Packet) error

	// Allocate returns a buffer of [size] bytes for passing data across the
	// call boundary.
	Allocate(size int) ([]byte, error)
}
