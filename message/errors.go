// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package message

import "errors"

// Infrastructure errors signal dispatch-layer failures and always abort the
// enclosing transaction. ErrMessageNotHandled is a handler-level outcome a
// caller may choose to tolerate.
var (
	// ErrHandlerNotFound: the target account does not exist, was never
	// initialized, or names a VM or handler that is not registered.
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrInvalidHandler: a handler could not be entered because the frame
	// push was rejected by the storage layer.
	ErrInvalidHandler = errors.New("invalid handler")

	// ErrUnauthorizedCaller: the packet's declared sender is not the account
	// the active frame executes as.
	ErrUnauthorizedCaller = errors.New("unauthorized caller access")

	// ErrFatalExecution: a non-retryable programming-error class, such as a
	// reentrant transaction acquisition or a frame pop that failed.
	ErrFatalExecution = errors.New("fatal execution error")

	// ErrMessageNotHandled reports that a handler does not implement the
	// requested selector.
	ErrMessageNotHandled = errors.New("message not handled")
)
