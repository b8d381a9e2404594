// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package service

import (
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"

	"github.com/ava-labs/avalanchego/utils/formatting"

	cjson "github.com/ava-labs/avalanchego/utils/json"

	"github.com/ava-labs/hypervm/hypervisor"
	"github.com/ava-labs/hypervm/message"
)

// Service exposes the hypervisor over JSON-RPC.
type Service struct {
	hv *hypervisor.Hypervisor
}

// New ...
func New(hv *hypervisor.Hypervisor) *Service {
	return &Service{hv: hv}
}

// NewHandler returns an http.Handler serving the hypervisor API under the
// service name.
func NewHandler(hv *hypervisor.Hypervisor) (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(New(hv), hypervisor.Name)
}

// InvokeArgs are the arguments to Invoke
type InvokeArgs struct {
	Sender cjson.Uint64 `json:"sender"`
	Target cjson.Uint64 `json:"target"`
	// Method is the stable method name; the selector is derived from it
	Method string `json:"method"`
	// Payloads are hex-encoded input buffers, one per in-pointer slot
	Payloads []string `json:"payloads"`
}

// InvokeReply is the reply from Invoke
type InvokeReply struct {
	Success bool `json:"success"`
}

// Invoke builds a packet from [args] and executes it as one transaction.
func (s *Service) Invoke(_ *http.Request, args *InvokeArgs, reply *InvokeReply) error {
	payloads := make([][]byte, len(args.Payloads))
	for i, payload := range args.Payloads {
		bytes, err := formatting.Decode(formatting.Hex, payload)
		if err != nil {
			return fmt.Errorf("couldn't decode payload: %w", err)
		}
		payloads[i] = bytes
	}

	packet, err := message.NewMessage(
		message.AccountID(args.Sender),
		message.AccountID(args.Target),
		message.NewSelector(args.Method),
		payloads...,
	)
	if err != nil {
		return err
	}

	if err := s.hv.Invoke(packet); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// CreateAccountArgs are the arguments to CreateAccount
type CreateAccountArgs struct {
	Sender cjson.Uint64 `json:"sender"`
	// Handler is the serialized "vm:handler" pair backing the new account
	Handler string `json:"handler"`
	// InitData is the hex-encoded payload passed to the on_create hook
	InitData string `json:"initData"`
}

// CreateAccountReply is the reply from CreateAccount
type CreateAccountReply struct {
	Success bool `json:"success"`
}

// CreateAccount sends the account-creation bootstrap message to the system
// account. New accounts are assigned sequential ids starting at the first
// non-reserved id.
func (s *Service) CreateAccount(_ *http.Request, args *CreateAccountArgs, reply *CreateAccountReply) error {
	var initData []byte
	if args.InitData != "" {
		bytes, err := formatting.Decode(formatting.Hex, args.InitData)
		if err != nil {
			return fmt.Errorf("couldn't decode init data: %w", err)
		}
		initData = bytes
	}

	packet, err := message.NewMessage(
		message.AccountID(args.Sender),
		message.NullAccount,
		message.CreateSelector,
		[]byte(args.Handler),
		initData,
	)
	if err != nil {
		return err
	}

	if err := s.hv.Invoke(packet); err != nil {
		return err
	}
	reply.Success = true
	return nil
}
