package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/txtar"
	"znkr.io/reconcile/internal/benchmarks"
)

type config struct {
	lib   string
	x, y  string
	txtar string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "reconcile", "library to use for diffing")
	flag.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	var lib *benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if l.Name == cfg.lib {
			lib = &l
		}
	}
	if lib == nil {
		names := make([]string, len(benchmarks.Impls))
		for i, l := range benchmarks.Impls {
			names[i] = l.Name
		}
		return fmt.Errorf("lib not found %q, want one of %v", cfg.lib, names)
	}

	x, y, err := inputs(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(lib.Diff(x, y))
	return err
}

func inputs(cfg config) (x, y []byte, err error) {
	if cfg.txtar == "" {
		if x, err = os.ReadFile(cfg.x); err != nil {
			return nil, nil, err
		}
		if y, err = os.ReadFile(cfg.y); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}

	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "x":
			x = f.Data
		case "y":
			y = f.Data
		default:
			return nil, nil, fmt.Errorf("unknown file in archive: %s", f.Name)
		}
	}
	return x, y, nil
}
