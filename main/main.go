// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net/http"
	"os"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/hypervm/hypervisor"
	"github.com/ava-labs/hypervm/message"
	"github.com/ava-labs/hypervm/nativevm"
	"github.com/ava-labs/hypervm/service"
	"github.com/ava-labs/hypervm/state"
	"github.com/ava-labs/hypervm/vm"
)

func main() {
	v, err := getViper()
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}

	// Print version and exit
	if v.GetBool(versionKey) {
		fmt.Printf("%s@%s\n", hypervisor.Name, hypervisor.Version)
		os.Exit(0)
	}

	lvl, err := log.LvlFromString(v.GetString(logLevelKey))
	if err != nil {
		fmt.Printf("invalid log level: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	registry, err := buildRegistry()
	if err != nil {
		log.Error("couldn't build VM registry", "err", err)
		os.Exit(1)
	}

	hv := hypervisor.New(state.NewMemHandler(), registry)
	handler, err := service.NewHandler(hv)
	if err != nil {
		log.Error("couldn't register service", "err", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", v.GetString(httpHostKey), v.GetUint(httpPortKey))
	log.Info("serving hypervisor API", "addr", addr, "version", hypervisor.Version)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// buildRegistry registers the in-process VM with a small key-value handler
// so a fresh host has something to create accounts from.
func buildRegistry() (*vm.Registry, error) {
	var (
		setSelector = message.NewSelector("kv.v1.set")
		getSelector = message.NewSelector("kv.v1.get")
	)

	native := nativevm.New()
	native.RegisterHandler("kvstore", vm.HandlerDescriptor{StorageParams: []byte("kvstore")}).
		On(setSelector, func(env *nativevm.Env) error {
			env.Storage.Set(env.Packet.InData(0), env.Packet.InData(1))
			return nil
		}).
		On(getSelector, func(env *nativevm.Env) error {
			value, ok := env.Storage.Get(env.Packet.InData(0))
			if !ok {
				return message.ErrMessageNotHandled
			}
			env.Packet.SetOutData(0, value)
			return nil
		})

	builder := vm.NewRegistryBuilder()
	if err := builder.Register(nativevm.Name, native); err != nil {
		return nil, err
	}
	return builder.Freeze(), nil
}
