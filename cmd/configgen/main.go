package main

import (
	"flag"
	"log"

	"github.com/danmuck/lf/internal/lfconfig"
)

func main() {
	output := flag.String("output", "lfctl.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "lfctl.toml", "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		if _, err := lfconfig.Load(*input); err != nil {
			log.Fatal(err)
		}
		log.Printf("validated lfctl config at %s", *input)
		return
	}

	if err := lfconfig.WriteTemplate(*output, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote lfctl config template to %s", *output)
}
