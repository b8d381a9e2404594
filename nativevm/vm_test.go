// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nativevm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ava-labs/hypervm/message"
	"github.com/ava-labs/hypervm/vm"
)

var _ vm.HostBackend = (*stubHost)(nil)

type stubHost struct{}

func (stubHost) Invoke(*message.Packet) error      { return nil }
func (stubHost) Allocate(size int) ([]byte, error) { return make([]byte, size), nil }

func TestRunHandler(t *testing.T) {
	assert := assert.New(t)

	getSelector := message.NewSelector("counter.v1.get")

	native := New()
	native.RegisterHandler("counter", vm.HandlerDescriptor{StorageParams: []byte("counter")}).
		On(getSelector, func(env *Env) error {
			assert.NotNil(env.Packet)
			assert.NotNil(env.Host)
			return nil
		})

	packet := message.NewPacket(1, 2, getSelector)
	assert.NoError(native.RunHandler("counter", packet, stubHost{}))

	// a selector the handler does not route is a handler-level outcome,
	// not an infrastructure error
	packet.SetSelector(message.NewSelector("counter.v1.unknown"))
	assert.ErrorIs(native.RunHandler("counter", packet, stubHost{}), message.ErrMessageNotHandled)

	// an unknown handler id is an infrastructure error
	assert.ErrorIs(native.RunHandler("missing", packet, stubHost{}), message.ErrHandlerNotFound)
}

func TestDescribeHandler(t *testing.T) {
	assert := assert.New(t)

	native := New()
	native.RegisterHandler("counter", vm.HandlerDescriptor{StorageParams: []byte("params")})

	descriptor, ok := native.DescribeHandler("counter")
	assert.True(ok)
	assert.Equal([]byte("params"), descriptor.StorageParams)

	_, ok = native.DescribeHandler("missing")
	assert.False(ok)
}
