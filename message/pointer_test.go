// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// The pointer encoding must be exactly 16 bytes on every target.
func TestDataPointerSize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(16, PointerSize)
	assert.Equal(uintptr(PointerSize), unsafe.Sizeof(DataPointer{}))
}

func TestDataPointerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	ptr := DataPointer{Len: 7, Offset: 91, Tag: 3}
	buf := make([]byte, PointerSize)
	putDataPointer(buf, ptr)
	assert.Equal(ptr, dataPointerAt(buf))
}

func TestLocalPointerBounds(t *testing.T) {
	assert := assert.New(t)

	payload := []byte("hello")
	packet, err := NewMessage(1, 2, 3, payload)
	assert.NoError(err)

	// a well-formed local pointer aliases the packet's own buffer
	ptr := packet.InPointer(0)
	assert.True(ptr.IsLocal())
	assert.Equal(payload, packet.Data(ptr))

	// ranges overlapping the header are never exposed as payload
	assert.Empty(packet.Data(DataPointer{Len: 4, Offset: 0}))
	assert.Empty(packet.Data(DataPointer{Len: 4, Offset: HeaderSize - 1}))

	// ranges past the end of the buffer decode to an empty slice
	assert.Empty(packet.Data(DataPointer{Len: uint32(len(payload)) + 1, Offset: HeaderSize}))
	assert.Empty(packet.Data(DataPointer{Len: ^uint32(0), Offset: ^uint32(0)}))

	// a zero-length range is valid and denotes "no data"
	assert.Empty(packet.Data(DataPointer{Len: 0, Offset: HeaderSize}))
}

func TestExternalPointerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	data := []byte{0xde, 0xad, 0xbe, 0xef}
	packet := NewPacket(1, 2, 3)
	packet.SetInData(0, data)

	ptr := packet.InPointer(0)
	assert.False(ptr.IsLocal())
	assert.Equal(uint32(len(data)), ptr.Len)
	assert.Equal(data, packet.InData(0))

	// a zero-length external buffer is valid
	packet.SetInData(1, nil)
	assert.Empty(packet.InData(1))

	// an unknown handle resolves to an empty slice
	assert.Empty(packet.Data(DataPointer{Len: 4, Tag: 99}))
}

func TestOutPointer(t *testing.T) {
	assert := assert.New(t)

	packet := NewPacket(1, 2, 3)
	assert.True(packet.OutPointer(0).IsLocal())
	assert.Empty(packet.OutData(0))

	result := []byte("result bytes")
	packet.SetOutData(0, result)
	assert.False(packet.OutPointer(0).IsLocal())
	assert.Equal(result, packet.OutData(0))
}
