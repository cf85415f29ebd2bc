// Command nyxc is the Nyx compiler front end's driver: a positional
// source path plus --dump-ir, --dump-llvm, --run, and -o flags, defaulting
// to --run when neither dump flag is given.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nyxlang/nyxc/pkg/compiler"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "nyxc",
		Usage: "The Nyx compiler front end (lex, parse, analyze, SSA IR generation)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output binary path (requires a configured backend)",
			},
			&cli.BoolFlag{
				Name:  "dump-ir",
				Usage: "dump the generated SSA IR to stdout",
			},
			&cli.BoolFlag{
				Name:  "dump-llvm",
				Usage: "dump the lowered LLVM IR to stdout (requires a configured backend)",
			},
			&cli.BoolFlag{
				Name:  "run",
				Usage: "compile and run the program (default when no dump flag is given)",
			},
		},
		Action: run,
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("must provide exactly one Nyx source file as argument")
	}

	path := c.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to open file %q: %w", path, err)
	}

	logger := slog.Default()

	nyxc, err := compiler.New(logger, compiler.Config{Path: path, Source: string(src)})
	if err != nil {
		return fmt.Errorf("failed to initialize compiler: %w", err)
	}

	mod, err := nyxc.Compile(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dumpIR := c.Bool("dump-ir")
	dumpLLVM := c.Bool("dump-llvm")
	shouldRun := c.Bool("run")

	// Default to running when neither dump flag was given.
	if !dumpIR && !dumpLLVM {
		shouldRun = true
	}

	if dumpIR {
		fmt.Println("--- Custom IR ---")
		fmt.Println(mod.Dump())
	}

	backend := compiler.UnimplementedBackend{}

	if dumpLLVM {
		if err := backend.Lower(ctx, mod, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	output := c.String("output")
	if shouldRun || output != "" {
		if err := backend.Lower(ctx, mod, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	return nil
}
