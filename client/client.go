// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/rpc"

	cjson "github.com/ava-labs/avalanchego/utils/json"

	"github.com/ava-labs/hypervm/hypervisor"
	"github.com/ava-labs/hypervm/service"
)

// Client defines hypervm client operations.
type Client interface {
	// Invoke executes one message as a transaction
	Invoke(ctx context.Context, sender, target uint64, method string, payloads [][]byte) (bool, error)

	// CreateAccount bootstraps a new account backed by [handler]
	CreateAccount(ctx context.Context, sender uint64, handler string, initData []byte) (bool, error)
}

// New creates a new client object.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri, "", hypervisor.Name)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Invoke(ctx context.Context, sender, target uint64, method string, payloads [][]byte) (bool, error) {
	encoded := make([]string, len(payloads))
	for i, payload := range payloads {
		bytes, err := formatting.EncodeWithChecksum(formatting.Hex, payload)
		if err != nil {
			return false, err
		}
		encoded[i] = bytes
	}

	resp := new(service.InvokeReply)
	err := cli.req.SendRequest(ctx,
		"invoke",
		&service.InvokeArgs{
			Sender:   cjson.Uint64(sender),
			Target:   cjson.Uint64(target),
			Method:   method,
			Payloads: encoded,
		},
		resp,
	)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) CreateAccount(ctx context.Context, sender uint64, handler string, initData []byte) (bool, error) {
	encoded := ""
	if len(initData) > 0 {
		bytes, err := formatting.EncodeWithChecksum(formatting.Hex, initData)
		if err != nil {
			return false, err
		}
		encoded = bytes
	}

	resp := new(service.CreateAccountReply)
	err := cli.req.SendRequest(ctx,
		"createAccount",
		&service.CreateAccountArgs{
			Sender:   cjson.Uint64(sender),
			Handler:  handler,
			InitData: encoded,
		},
		resp,
	)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}
