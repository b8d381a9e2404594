// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ava-labs/hypervm/message"
)

type noopVM struct{}

func (noopVM) RunHandler(string, *message.Packet, HostBackend) error { return nil }
func (noopVM) DescribeHandler(string) (HandlerDescriptor, bool) {
	return HandlerDescriptor{}, false
}

func TestRegistryLifecycle(t *testing.T) {
	assert := assert.New(t)

	builder := NewRegistryBuilder()
	assert.NoError(builder.Register("native", noopVM{}))
	assert.NoError(builder.Register("wasm", noopVM{}))

	// duplicate names are rejected
	assert.ErrorIs(builder.Register("native", noopVM{}), errDuplicateVM)

	registry := builder.Freeze()

	// no mutation after the registry has been published
	assert.ErrorIs(builder.Register("evm", noopVM{}), errFrozenBuilder)

	_, ok := registry.Lookup("native")
	assert.True(ok)
	_, ok = registry.Lookup("evm")
	assert.False(ok)

	assert.Equal([]string{"native", "wasm"}, registry.Names())
}
