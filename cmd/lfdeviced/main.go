// Command lfdeviced is the device-side simulator: it listens for
// connections standing in for a USB/UART channel and runs the C7
// perform engine against a registry of built-in modules (led, gpio),
// the "shape" of the out-of-scope peripheral drivers named in spec.md
// §1.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/lf/internal/obslog"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:4242", "address to listen on")
	wordSize := flag.Int("word-size", 4, "native pointer/uint width in bytes (2 or 4)")
	memSize := flag.Uint("mem", 1<<16, "bulk-transfer memory region size in bytes")
	identifier := flag.Uint("id", 1, "device identifier reported on configuration query; the host rejects an attach whose CRC16(name) doesn't match this value")
	flag.Parse()

	obslog.ConfigureRuntime("lfdeviced")

	if *wordSize != 2 && *wordSize != 4 {
		fmt.Fprintln(os.Stderr, "lfdeviced: -word-size must be 2 or 4")
		os.Exit(1)
	}

	cfg := serverConfig{
		addr:       *addr,
		wordSize:   *wordSize,
		memSize:    uint32(*memSize),
		identifier: uint16(*identifier),
	}
	if err := serve(cfg); err != nil {
		log.Error().Err(err).Msg("lfdeviced exited")
		os.Exit(1)
	}
}
