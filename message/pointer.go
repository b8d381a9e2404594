// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import "encoding/binary"

// PointerSize is the size of a DataPointer, in memory and on the wire.
// Header slot offsets depend on it; it is a wire-compatibility requirement,
// not an implementation accident.
const PointerSize = 16

// DataPointer references a byte range passed through a message header slot.
//
// A zero Tag is a local pointer: Len bytes at Offset inside the packet's own
// buffer. A non-zero Tag is an external pointer: Tag is a 1-based handle to
// a buffer registered on the packet and owned outside it, and Offset carries
// the buffer's capacity. The handle stands in for the raw address the wire
// layout was designed around, so external data stays ownership-tracked.
type DataPointer struct {
	Len    uint32
	Offset uint32
	Tag    uint64
}

// IsLocal returns true when the pointer addresses bytes inside the packet's
// own buffer.
func (p DataPointer) IsLocal() bool { return p.Tag == 0 }

func putDataPointer(b []byte, p DataPointer) {
	binary.LittleEndian.PutUint32(b[0:4], p.Len)
	binary.LittleEndian.PutUint32(b[4:8], p.Offset)
	binary.LittleEndian.PutUint64(b[8:16], p.Tag)
}

func dataPointerAt(b []byte) DataPointer {
	return DataPointer{
		Len:    binary.LittleEndian.Uint32(b[0:4]),
		Offset: binary.LittleEndian.Uint32(b[4:8]),
		Tag:    binary.LittleEndian.Uint64(b[8:16]),
	}
}
