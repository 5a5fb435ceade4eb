// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package main implements the nixdiff application
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/maloquacious/semver"
	"github.com/playbymail/nixdiff/cerrs"
	"github.com/playbymail/nixdiff/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 3,
		Patch: 0,
		Build: semver.Commit(),
	}
	globalConfig *config.Config
)

func main() {
	// if version is on the command line, show it and exit
	for _, arg := range os.Args {
		if arg == "-version" || arg == "--version" {
			fmt.Printf("%s\n", version.Short())
			return
		} else if arg == "-build-info" || arg == "--build-info" {
			fmt.Printf("%s\n", version.String())
			return
		}
	}
	log.SetFlags(log.Lshortfile | log.Ltime)

	const configFileName = "nixdiff.json"
	// set the debug flag only if there is a configuration file to debug
	debugConfigFile := false
	if sb, err := os.Stat(configFileName); err == nil && sb.Mode().IsRegular() {
		debugConfigFile = true
	}
	cfg, err := config.Load(configFileName, debugConfigFile)
	if err != nil && debugConfigFile {
		log.Printf("[config] %q: %v\n", configFileName, err)
	}

	if err := Execute(cfg); err != nil {
		log.Fatal(err)
	}
}

func Execute(cfg *config.Config) error {
	globalConfig = cfg

	cmdRoot.AddCommand(cmdCompare)
	cmdCompare.Flags().BoolVar(&argsCompare.recursive, "recursive", false, "recurse into subdirectories")
	cmdCompare.Flags().BoolVar(&argsCompare.check, "check", false, "verify structural invariants on every normalized tree")
	cmdCompare.Flags().StringVar(&argsCompare.paths.store, "store", cfg.Store, "record the run in this database")

	cmdRoot.AddCommand(cmdDump)
	cmdDump.Flags().BoolVar(&argsDump.recursive, "recursive", false, "recurse into subdirectories")
	cmdDump.Flags().StringSliceVar(&argsDump.parsers, "parser", nil, "which parser to dump (reference, cst, rast; can specify multiple)")

	cmdRoot.AddCommand(cmdDb)
	cmdDb.PersistentFlags().StringVar(&argsDb.paths.store, "store", cfg.Store, "path to the database file")

	cmdDb.AddCommand(cmdDbCreate)
	cmdDbCreate.AddCommand(cmdDbCreateDatabase)
	cmdDbCreateDatabase.Flags().BoolVar(&argsDb.create.force, "force", false, "force the creation if the database exists")

	cmdDb.AddCommand(cmdDbRuns)

	cmdDb.AddCommand(cmdDbResults)
	cmdDbResults.Flags().StringVar(&argsDb.run, "run", "", "run id to report on")
	if err := cmdDbResults.MarkFlagRequired("run"); err != nil {
		log.Fatalf("run: %v\n", err)
	}

	cmdRoot.AddCommand(cmdVersion)

	return cmdRoot.Execute()
}

var cmdRoot = &cobra.Command{
	Use:   "nixdiff",
	Short: "differential conformance tester for Nix parsers",
	Long:  `Compare the reference Nix parser and the CST-based parser by reducing both to a canonical JSON form.`,
}

// resolveInputPath expands a "<...>" argument against the nixpkgs entry of
// NIX_PATH, matching the reference tooling's convention.
func resolveInputPath(arg string) (string, error) {
	inner, ok := strings.CutPrefix(arg, "<")
	if !ok {
		return arg, nil
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return arg, nil
	}
	nixpkgs, err := pathToNixpkgs()
	if err != nil {
		return "", err
	}
	return filepath.Join(nixpkgs, inner), nil
}

func pathToNixpkgs() (string, error) {
	for _, entry := range strings.Split(os.Getenv("NIX_PATH"), ":") {
		if path, ok := strings.CutPrefix(entry, "nixpkgs="); ok {
			return path, nil
		}
	}
	return "", cerrs.ErrCantFindNixpkgs
}

// basePathFor returns the directory relative path literals resolve
// against: the configured override, or the input file's directory, or the
// working directory for stdin.
func basePathFor(inputFile string) (string, error) {
	if globalConfig.BasePath != "" {
		return globalConfig.BasePath, nil
	}
	if inputFile == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(inputFile)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

// homePath returns the directory "~/" path literals resolve against.
func homePath() (string, error) {
	if globalConfig.HomePath != "" {
		return globalConfig.HomePath, nil
	}
	return os.UserHomeDir()
}
