// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "strings"

// HandlerID names which VM, and which handler within it, backs an account.
// Its serialized form is "vm:handler"; everything after the first colon
// belongs to the handler part.
type HandlerID struct {
	VM      string
	Handler string
}

// ParseHandlerID parses the serialized "vm:handler" form.
func ParseHandlerID(value []byte) (HandlerID, bool) {
	vmName, handler, found := strings.Cut(string(value), ":")
	if !found || vmName == "" || handler == "" {
		return HandlerID{}, false
	}
	return HandlerID{VM: vmName, Handler: handler}, true
}

func (h HandlerID) String() string { return h.VM + ":" + h.Handler }

// Bytes returns the serialized form stored in the bookkeeping namespace.
func (h HandlerID) Bytes() []byte { return []byte(h.String()) }
