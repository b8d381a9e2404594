// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	assert := assert.New(t)

	first := []byte("native:counter")
	second := []byte{1, 2, 3}
	packet, err := NewMessage(FirstUserAccount, NullAccount, CreateSelector, first, second)
	assert.NoError(err)

	assert.Equal(FirstUserAccount, packet.Sender())
	assert.Equal(NullAccount, packet.Target())
	assert.Equal(CreateSelector, packet.Selector())
	assert.Equal(HeaderSize+len(first)+len(second), packet.Len())

	assert.Equal(first, packet.InData(0))
	assert.Equal(second, packet.InData(1))

	// the payloads survive a trip through the raw buffer
	parsed, err := ParsePacket(packet.Bytes())
	assert.NoError(err)
	assert.Equal(first, parsed.InData(0))
	assert.Equal(second, parsed.InData(1))
}

func TestNewMessageTooManyPayloads(t *testing.T) {
	_, err := NewMessage(1, 2, 3, nil, nil, nil)
	assert.ErrorIs(t, err, errTooManyPayloads)
}

func TestParsePacketTooShort(t *testing.T) {
	_, err := ParsePacket(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, errPacketTooShort)
}

func TestHeaderFields(t *testing.T) {
	assert := assert.New(t)

	packet := NewPacket(0, 0, 0)
	packet.SetSender(42)
	packet.SetTarget(FirstUserAccount + 7)
	packet.SetSelector(0xCAFEBABE)

	assert.Equal(AccountID(42), packet.Sender())
	assert.Equal(FirstUserAccount+7, packet.Target())
	assert.Equal(uint64(0xCAFEBABE), packet.Selector())
	assert.Equal(HeaderSize, packet.Len())

	assert.True(packet.Sender().IsReserved())
	assert.False(packet.Target().IsReserved())
	assert.False(packet.Target().IsNull())
}
