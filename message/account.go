// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

// AccountID identifies a principal addressable by messages. An ID is
// assigned once and never reused.
type AccountID uint64

const (
	// NullAccount is the system account. Messages targeting it are handled
	// by the hypervisor itself rather than a registered handler.
	NullAccount AccountID = 0

	// FirstUserAccount is the first ID assigned to user-created accounts.
	// Everything below it is reserved for system and built-in accounts.
	FirstUserAccount AccountID = 1 << 16
)

// IsNull returns true for the null/system account.
func (a AccountID) IsNull() bool { return a == NullAccount }

// IsReserved returns true for system and built-in accounts.
func (a AccountID) IsReserved() bool { return a < FirstUserAccount }
