// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import (
	"encoding/binary"
	"errors"
)

const (
	// NumInPointers and NumOutPointers are the header's data-pointer slots
	// for passing input buffers and returning output buffers.
	NumInPointers  = 2
	NumOutPointers = 2

	// HeaderSize is the fixed size of the header at the front of every
	// packet. Local pointers may never reach below it.
	HeaderSize = outPointerOffset + NumOutPointers*PointerSize
)

// Header field offsets. All fields are little-endian.
const (
	senderOffset     = 0
	targetOffset     = 8
	selectorOffset   = 16
	inPointerOffset  = 24
	outPointerOffset = inPointerOffset + NumInPointers*PointerSize
)

var (
	errPacketTooShort  = errors.New("packet shorter than message header")
	errTooManyPayloads = errors.New("more payloads than in-pointer slots")
)

// Packet is a contiguous message buffer: the fixed header optionally
// followed by inline payload bytes. Buffers referenced by external pointers
// are registered on the packet so the header never carries a raw address.
type Packet struct {
	buf    []byte
	extern [][]byte
}

// NewPacket returns a header-only packet carrying [selector] from [sender]
// to [target].
func NewPacket(sender, target AccountID, selector uint64) *Packet {
	p := &Packet{buf: make([]byte, HeaderSize)}
	p.SetSender(sender)
	p.SetTarget(target)
	p.SetSelector(selector)
	return p
}

// NewMessage builds a packet with [payloads] inlined after the header and
// the in-pointer slots addressing them as local ranges.
func NewMessage(sender, target AccountID, selector uint64, payloads ...[]byte) (*Packet, error) {
	if len(payloads) > NumInPointers {
		return nil, errTooManyPayloads
	}
	size := HeaderSize
	for _, payload := range payloads {
		size += len(payload)
	}
	p := &Packet{buf: make([]byte, HeaderSize, size)}
	p.SetSender(sender)
	p.SetTarget(target)
	p.SetSelector(selector)
	for i, payload := range payloads {
		ptr := DataPointer{
			Len:    uint32(len(payload)),
			Offset: uint32(len(p.buf)),
		}
		p.buf = append(p.buf, payload...)
		p.setPointer(inPointerOffset+i*PointerSize, ptr)
	}
	return p, nil
}

// ParsePacket wraps [buf] as a packet. The buffer is aliased, not copied.
func ParsePacket(buf []byte) (*Packet, error) {
	if len(buf) < HeaderSize {
		return nil, errPacketTooShort
	}
	return &Packet{buf: buf}, nil
}

// Bytes returns the packet's backing buffer.
func (p *Packet) Bytes() []byte { return p.buf }

// Len returns the total buffer length, header included.
func (p *Packet) Len() int { return len(p.buf) }

// Sender is the account the message claims to originate from.
func (p *Packet) Sender() AccountID {
	return AccountID(binary.LittleEndian.Uint64(p.buf[senderOffset:]))
}

// SetSender ...
func (p *Packet) SetSender(sender AccountID) {
	binary.LittleEndian.PutUint64(p.buf[senderOffset:], uint64(sender))
}

// Target is the account the message is addressed to.
func (p *Packet) Target() AccountID {
	return AccountID(binary.LittleEndian.Uint64(p.buf[targetOffset:]))
}

// SetTarget ...
func (p *Packet) SetTarget(target AccountID) {
	binary.LittleEndian.PutUint64(p.buf[targetOffset:], uint64(target))
}

// Selector is the message's 64-bit dispatch key.
func (p *Packet) Selector() uint64 {
	return binary.LittleEndian.Uint64(p.buf[selectorOffset:])
}

// SetSelector ...
func (p *Packet) SetSelector(selector uint64) {
	binary.LittleEndian.PutUint64(p.buf[selectorOffset:], selector)
}

// InPointer reads in-pointer slot [i].
func (p *Packet) InPointer(i int) DataPointer {
	return p.pointerAt(inPointerOffset + i*PointerSize)
}

// OutPointer reads out-pointer slot [i].
func (p *Packet) OutPointer(i int) DataPointer {
	return p.pointerAt(outPointerOffset + i*PointerSize)
}

// InData resolves in-pointer slot [i] to the bytes it references.
func (p *Packet) InData(i int) []byte { return p.Data(p.InPointer(i)) }

// OutData resolves out-pointer slot [i] to the bytes it references.
func (p *Packet) OutData(i int) []byte { return p.Data(p.OutPointer(i)) }

// SetInData registers [data] as an externally owned buffer and overwrites
// in-pointer slot [i] with a reference to it. The previous slot contents are
// lost, so this must only initialize a slot, never repoint one whose local
// range still matters. The caller keeps [data] alive and unchanged for as
// long as the packet is in flight.
func (p *Packet) SetInData(i int, data []byte) {
	p.setPointer(inPointerOffset+i*PointerSize, p.registerExternal(data))
}

// SetOutData registers [data] as an externally owned buffer and overwrites
// out-pointer slot [i] with a reference to it.
func (p *Packet) SetOutData(i int, data []byte) {
	p.setPointer(outPointerOffset+i*PointerSize, p.registerExternal(data))
}

// Data resolves [ptr] to the bytes it references. A local pointer that
// reaches into the header or past the end of the buffer resolves to an
// empty slice, never a fault: a malformed or adversarial header must not
// induce an out-of-bounds read. A zero-length range is valid and denotes
// "no data".
func (p *Packet) Data(ptr DataPointer) []byte {
	if ptr.IsLocal() {
		offset, length := uint64(ptr.Offset), uint64(ptr.Len)
		if offset < HeaderSize || offset+length > uint64(len(p.buf)) {
			return nil
		}
		return p.buf[offset : offset+length]
	}
	if ptr.Tag > uint64(len(p.extern)) {
		return nil
	}
	data := p.extern[ptr.Tag-1]
	if int64(ptr.Len) < int64(len(data)) {
		return data[:ptr.Len]
	}
	return data
}

func (p *Packet) registerExternal(data []byte) DataPointer {
	p.extern = append(p.extern, data)
	return DataPointer{
		Len:    uint32(len(data)),
		Offset: uint32(len(data)), // capacity mirrors the length
		Tag:    uint64(len(p.extern)),
	}
}

func (p *Packet) pointerAt(offset int) DataPointer {
	return dataPointerAt(p.buf[offset:])
}

func (p *Packet) setPointer(offset int, ptr DataPointer) {
	putDataPointer(p.buf[offset:], ptr)
}
