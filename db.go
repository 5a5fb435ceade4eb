// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/playbymail/nixdiff/internal/results"
	"github.com/playbymail/nixdiff/internal/stores/sqlite"
	"github.com/spf13/cobra"
)

var argsDb struct {
	paths struct {
		store string // path to the database file
	}
	create struct {
		force bool // if true, overwrite existing database
	}
	run string // run id for reports
}

var cmdDb = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
}

var cmdDbCreate = &cobra.Command{
	Use:   "create",
	Short: "Create database objects",
}

var cmdDbCreateDatabase = &cobra.Command{
	Use:   "database",
	Short: "Create a new results database",
	Run: func(cmd *cobra.Command, args []string) {
		if argsDb.paths.store == "" {
			log.Fatalf("db: create: missing store path\n")
		}
		if argsDb.create.force {
			if err := os.Remove(argsDb.paths.store); err != nil && !os.IsNotExist(err) {
				log.Fatalf("db: create: %v\n", err)
			}
		}
		if err := sqlite.Create(argsDb.paths.store, context.Background()); err != nil {
			log.Fatalf("db: create: %v\n", err)
		}
	},
}

var cmdDbRuns = &cobra.Command{
	Use:   "runs",
	Short: "List recorded conformance runs",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := sqlite.Open(argsDb.paths.store, context.Background())
		if err != nil {
			log.Fatalf("db: runs: %v\n", err)
		}
		defer store.Close()

		runs, err := store.ListRuns()
		if err != nil {
			log.Fatalf("db: runs: %v\n", err)
		}
		for _, run := range runs {
			summary, err := store.SummarizeRun(run.ID)
			if err != nil {
				log.Fatalf("db: runs: %v\n", err)
			}
			fmt.Printf("%s  started %s  %d equal, %d mismatched, %d errors\n",
				run.ID, run.StartedAt,
				summary[results.Equal], summary[results.Mismatch],
				summary[results.RefParserError]+summary[results.CSTError]+summary[results.NormalizeError])
		}
	},
}

var cmdDbResults = &cobra.Command{
	Use:   "results",
	Short: "List per-file outcomes of a run",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := sqlite.Open(argsDb.paths.store, context.Background())
		if err != nil {
			log.Fatalf("db: results: %v\n", err)
		}
		defer store.Close()

		list, err := store.ListResults(argsDb.run)
		if err != nil {
			log.Fatalf("db: results: %v\n", err)
		}
		for _, rslt := range list {
			fmt.Printf("%-24s %s\n", rslt.Outcome, rslt.Path)
			if rslt.Detail != "" {
				fmt.Printf("%s\n", rslt.Detail)
			}
		}
	},
}
