package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/lf/internal/device"
	"github.com/danmuck/lf/internal/lfmodules/gpio"
	"github.com/danmuck/lf/internal/lfmodules/led"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/transport"
)

type serverConfig struct {
	addr       string
	wordSize   int
	memSize    uint32
	identifier uint16
}

// userOffset reserves indices 0-1 for the built-in led/gpio modules
// registered below; dynamically loaded user modules start at 2.
const userOffset = 2

// buildRegistry registers the sample built-in modules standing in for
// this device's peripheral drivers.
func buildRegistry() *lfregistry.Registry {
	reg := lfregistry.New(userOffset)
	if _, err := reg.Register("led", led.Functions(&led.State{})); err != nil {
		log.Fatal().Err(err).Msg("register led module")
	}
	if _, err := reg.Register("gpio", gpio.Functions(&gpio.Bank{})); err != nil {
		log.Fatal().Err(err).Msg("register gpio module")
	}
	return reg
}

// serve listens on cfg.addr and runs one device.Engine per accepted
// connection, each with its own registry and memory region so
// concurrent clients don't share device state.
func serve(cfg serverConfig) error {
	profile := trampoline.ARM32
	if cfg.wordSize == 2 {
		profile = trampoline.AVR8
	}

	ln, err := net.Listen("tcp", cfg.addr)
	if err != nil {
		return fmt.Errorf("lfdeviced: listen %s: %w", cfg.addr, err)
	}
	defer ln.Close()
	log.Info().Str("addr", cfg.addr).Str("profile", profile.Name).Msg("lfdeviced listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("lfdeviced: accept: %w", err)
		}
		go handleConn(conn, cfg, profile)
	}
}

func handleConn(conn net.Conn, cfg serverConfig, profile trampoline.Profile) {
	defer conn.Close()
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("device connection accepted")

	ep := transport.NewFromConn(conn)
	eng := device.New(cfg.identifier, buildRegistry(), profile, cfg.memSize, ep)

	ctx := context.Background()
	for {
		if err := eng.Perform(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				log.Info().Str("remote", conn.RemoteAddr().String()).Msg("device connection closed")
				return
			}
			log.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("perform failed, closing connection")
			return
		}
	}
}
