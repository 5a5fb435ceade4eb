// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/playbymail/nixdiff/internal/canon"
	"github.com/playbymail/nixdiff/internal/cst"
	"github.com/playbymail/nixdiff/internal/norm"
	"github.com/playbymail/nixdiff/internal/rast"
	"github.com/playbymail/nixdiff/internal/refparser"
	"github.com/playbymail/nixdiff/internal/results"
	"github.com/playbymail/nixdiff/internal/stdlib"
	"github.com/playbymail/nixdiff/internal/stores/sqlite"
)

var argsCompare struct {
	paths struct {
		store string // optional database to record the run in
	}
	recursive bool
	check     bool
}

var cmdCompare = &cobra.Command{
	Use:   "compare [file|dir]...",
	Short: "compare both parsers on the inputs",
	Long:  `Parse every input with the reference parser and the CST parser, normalize, and compare the canonical JSON forms. Reads stdin when no input is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCompare(args)
	},
}

// comparison_t is the outcome of checking one input.
type comparison_t struct {
	path    string // "" for stdin
	hash    string
	outcome results.Outcome_e
	detail  string
}

func runCompare(cmdArgs []string) {
	ctx := context.Background()
	ref := refparser.New(globalConfig.RefParser.Command, globalConfig.RefParser.Args...)
	producer := cst.NewProducer(globalConfig.CSTParser.Command, globalConfig.CSTParser.Args...)

	home, err := homePath()
	if err != nil {
		log.Fatalf("compare: home: %v\n", err)
	}

	var comparisons []comparison_t
	if len(cmdArgs) == 0 {
		// read the expression from stdin
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("compare: stdin: %v\n", err)
		}
		base, err := basePathFor("")
		if err != nil {
			log.Fatalf("compare: %v\n", err)
		}
		c := compareSource(ctx, ref, producer, "stdin", string(input), base, home)
		comparisons = append(comparisons, c)
	} else {
		for _, arg := range cmdArgs {
			arg, err := resolveInputPath(arg)
			if err != nil {
				log.Fatalf("compare: %q: %v\n", arg, err)
			}
			files, err := collectInputs(arg, argsCompare.recursive)
			if err != nil {
				log.Fatalf("compare: %q: %v\n", arg, err)
			}
			for _, file := range files {
				comparisons = append(comparisons, compareFile(ctx, ref, producer, file, home))
			}
		}
	}

	// tally and report
	tally := map[results.Outcome_e]int{}
	for _, c := range comparisons {
		tally[c.outcome]++
		name := c.path
		if name == "" {
			name = "stdin"
		}
		if c.outcome == results.Equal {
			log.Printf("compare: %s: %s\n", name, c.outcome)
		} else {
			log.Printf("compare: %s: %s\n%s\n", name, c.outcome, c.detail)
		}
	}
	log.Printf("compare: %d equal, %d mismatched, %d reference errors, %d cst errors, %d normalize errors\n",
		tally[results.Equal], tally[results.Mismatch],
		tally[results.RefParserError], tally[results.CSTError], tally[results.NormalizeError])

	if argsCompare.paths.store != "" {
		saveRun(ctx, comparisons)
	}

	if len(comparisons) != tally[results.Equal] {
		os.Exit(1)
	}
}

func compareFile(ctx context.Context, ref *refparser.Parser, producer *cst.Producer, file *stdlib.File_t, home string) comparison_t {
	c := comparison_t{path: file.Path, hash: file.Hash}

	refJSON, err := ref.ParseFile(ctx, file.Path)
	if err != nil {
		c.outcome, c.detail = results.RefParserError, err.Error()
		return c
	}
	node, err := producer.ParseFile(ctx, file.Path)
	if err != nil {
		c.outcome, c.detail = results.CSTError, err.Error()
		return c
	}
	base, err := basePathFor(file.Path)
	if err != nil {
		c.outcome, c.detail = results.NormalizeError, err.Error()
		return c
	}
	c.outcome, c.detail = compareTrees(refJSON, node, base, home)
	return c
}

func compareSource(ctx context.Context, ref *refparser.Parser, producer *cst.Producer, name, input, base, home string) comparison_t {
	c := comparison_t{path: name}

	refJSON, err := ref.ParseString(ctx, input)
	if err != nil {
		c.outcome, c.detail = results.RefParserError, err.Error()
		return c
	}
	node, err := producer.ParseString(ctx, input)
	if err != nil {
		c.outcome, c.detail = results.CSTError, err.Error()
		return c
	}
	c.outcome, c.detail = compareTrees(refJSON, node, base, home)
	return c
}

// compareTrees normalizes the CST and compares both canonical encodings.
func compareTrees(refJSON []byte, node cst.Node, base, home string) (results.Outcome_e, string) {
	expr, err := norm.Normalize(node, base, home)
	if err != nil {
		return results.NormalizeError, err.Error()
	}
	if argsCompare.check {
		if err := rast.Check(expr); err != nil {
			return results.NormalizeError, err.Error()
		}
	}
	rastJSON, err := json.Marshal(expr)
	if err != nil {
		return results.NormalizeError, err.Error()
	}

	equal, err := canon.Equal(refJSON, rastJSON)
	if err != nil {
		return results.RefParserError, err.Error()
	}
	if equal {
		return results.Equal, ""
	}
	diff, err := canon.Diff(refJSON, rastJSON)
	if err != nil {
		return results.Mismatch, err.Error()
	}
	detail := ""
	for _, line := range diff {
		detail += fmt.Sprintf("  %s\n", line)
	}
	return results.Mismatch, detail
}

func saveRun(ctx context.Context, comparisons []comparison_t) {
	store, err := sqlite.Open(argsCompare.paths.store, ctx)
	if err != nil {
		log.Fatalf("compare: store: %v\n", err)
	}
	defer store.Close()

	base, _ := basePathFor("")
	home, _ := homePath()
	runId := uuid.New().String()
	if err := store.CreateRun(runId, base, home); err != nil {
		log.Fatalf("compare: store: %v\n", err)
	}
	for _, c := range comparisons {
		name := c.path
		if name == "" {
			name = "stdin"
		}
		if err := store.RecordResult(runId, name, c.hash, c.outcome, c.detail); err != nil {
			log.Fatalf("compare: store: %v\n", err)
		}
	}
	if err := store.FinishRun(runId); err != nil {
		log.Fatalf("compare: store: %v\n", err)
	}
	log.Printf("compare: recorded run %s\n", runId)
}

// collectInputs expands a file or directory argument to input files.
func collectInputs(path string, recursive bool) ([]*stdlib.File_t, error) {
	if ok, err := stdlib.IsDirExists(path); err != nil {
		return nil, err
	} else if ok {
		return stdlib.FindNixFiles(path, recursive)
	}
	file, err := stdlib.FindNixFile(path)
	if err != nil {
		return nil, err
	}
	return []*stdlib.File_t{file}, nil
}
