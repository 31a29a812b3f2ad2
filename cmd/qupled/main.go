// Command qupled is the thin CLI front-end wrapping the closure solver
// (spec §6), following main.go's defer-recover exit-code-mapping shape.
package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/qupled/qupled-go/inp"
	"github.com/qupled/qupled-go/scheme"
)

type kinded interface {
	Kind() string
}

func exitCode(err error) int {
	if k, ok := err.(kinded); ok {
		switch k.Kind() {
		case "ConfigError":
			return 1
		case "IOError", "CacheMismatch":
			return 2
		default:
			return 3
		}
	}
	return 3
}

func main() {
	code := 0
	defer func() {
		if r := recover(); r != nil {
			io.Pfred("ERROR: %v\n", r)
			os.Exit(3)
		}
		os.Exit(code)
	}()

	io.PfWhite("\nqupled -- dielectric theory of the warm dense electron gas\n\n")

	cfg, err := inp.ParseFlags(os.Args[1:])
	if err != nil {
		io.Pfred("ERROR: %v\n", err)
		code = 1
		return
	}
	if err := cfg.Validate(); err != nil {
		io.Pfred("ERROR: %v\n", err)
		code = exitCode(err)
		return
	}

	res, err := scheme.Run(cfg)
	if err != nil {
		io.Pfred("ERROR: %v\n", err)
		code = exitCode(err)
		return
	}
	if res.Warning != nil {
		io.Pfyel("WARNING: %v\n", res.Warning)
	}

	if err := scheme.OutputFiles(".", cfg, res); err != nil {
		io.Pfred("ERROR: %v\n", err)
		code = exitCode(err)
		return
	}

	if cfg.Log.Verbose {
		io.Pf("> static iterations: %d (residual %.3e)\n", res.StaticIters, res.StaticErr)
		if res.OmegaAxis != nil {
			io.Pf("> dynamic iterations: %d (residual %.3e)\n", res.DynamicIters, res.DynamicErr)
		}
	}
	chk.Verbose = cfg.Log.Verbose
}
