// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/playbymail/nixdiff/internal/cst"
	"github.com/playbymail/nixdiff/internal/norm"
	"github.com/playbymail/nixdiff/internal/refparser"
	"github.com/playbymail/nixdiff/internal/stdlib"
	"github.com/spf13/cobra"
)

var argsDump struct {
	parsers   []string
	recursive bool
}

var cmdDump = &cobra.Command{
	Use:   "dump [file|dir]",
	Short: "dump parser output for the inputs",
	Long:  `Dump the selected serializations (reference, cst, rast) for each input. Reads stdin when no input is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		runDump(args)
	},
}

func runDump(cmdArgs []string) {
	ctx := context.Background()
	ref := refparser.New(globalConfig.RefParser.Command, globalConfig.RefParser.Args...)
	producer := cst.NewProducer(globalConfig.CSTParser.Command, globalConfig.CSTParser.Args...)

	if len(argsDump.parsers) == 0 {
		argsDump.parsers = []string{"rast"}
	}
	for _, parser := range argsDump.parsers {
		switch parser {
		case "reference", "cst", "rast":
		default:
			log.Fatalf("dump: unknown parser %q\n", parser)
		}
	}

	home, err := homePath()
	if err != nil {
		log.Fatalf("dump: home: %v\n", err)
	}

	if len(cmdArgs) == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("dump: stdin: %v\n", err)
		}
		base, err := basePathFor("")
		if err != nil {
			log.Fatalf("dump: %v\n", err)
		}
		dumpSource(ctx, ref, producer, "stdin", string(input), base, home)
		return
	}

	for _, arg := range cmdArgs {
		arg, err := resolveInputPath(arg)
		if err != nil {
			log.Fatalf("dump: %q: %v\n", arg, err)
		}
		files, err := collectInputs(arg, argsDump.recursive)
		if err != nil {
			log.Fatalf("dump: %q: %v\n", arg, err)
		}
		for _, file := range files {
			dumpFile(ctx, ref, producer, file, home)
		}
	}
}

func dumpFile(ctx context.Context, ref *refparser.Parser, producer *cst.Producer, file *stdlib.File_t, home string) {
	fmt.Printf("%s\n", file.Path)

	for _, parser := range argsDump.parsers {
		switch parser {
		case "reference":
			out, err := ref.ParseFile(ctx, file.Path)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", file.Path, err)
			}
			printDump("reference impl json", out)
		case "cst":
			out, err := producer.RawFile(ctx, file.Path)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", file.Path, err)
			}
			printDump("cst json", out)
		case "rast":
			node, err := producer.ParseFile(ctx, file.Path)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", file.Path, err)
			}
			base, err := basePathFor(file.Path)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", file.Path, err)
			}
			dumpNormalized(node, base, home)
		}
	}
}

func dumpSource(ctx context.Context, ref *refparser.Parser, producer *cst.Producer, name, input, base, home string) {
	fmt.Printf("%s\n", name)

	for _, parser := range argsDump.parsers {
		switch parser {
		case "reference":
			out, err := ref.ParseString(ctx, input)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", name, err)
			}
			printDump("reference impl json", out)
		case "cst":
			out, err := producer.RawString(ctx, input)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", name, err)
			}
			printDump("cst json", out)
		case "rast":
			node, err := producer.ParseString(ctx, input)
			if err != nil {
				log.Fatalf("dump: %s: %v\n", name, err)
			}
			dumpNormalized(node, base, home)
		}
	}
}

func dumpNormalized(node cst.Node, base, home string) {
	expr, err := norm.Normalize(node, base, home)
	if err != nil {
		log.Fatalf("dump: normalize: %v\n", err)
	}
	out, err := json.Marshal(expr)
	if err != nil {
		log.Fatalf("dump: marshal: %v\n", err)
	}
	printDump("normalized json", out)
}

func printDump(label string, data []byte) {
	fmt.Printf("==== %s ====\n%s\n\n", label, data)
}
