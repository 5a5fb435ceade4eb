// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/playbymail/nixdiff/cerrs"
)

// Config allows each user to have their own configuration.
type Config struct {
	BasePath   string       `json:"BasePath,omitempty"` // overrides the input file's directory
	HomePath   string       `json:"HomePath,omitempty"` // overrides $HOME
	RefParser  Command_t    `json:"RefParser"`
	CSTParser  Command_t    `json:"CSTParser"`
	Store      string       `json:"Store,omitempty"` // path to the results database
	DebugFlags DebugFlags_t `json:"DebugFlags"`
}

// Command_t names an external parser command and its fixed arguments.
type Command_t struct {
	Command string   `json:"Command,omitempty"`
	Args    []string `json:"Args,omitempty"`
}

type DebugFlags_t struct {
	DumpCST  bool `json:"DumpCST,omitempty"`
	DumpRAST bool `json:"DumpRAST,omitempty"`
	LogFile  bool `json:"LogFile,omitempty"`
	LogTime  bool `json:"LogTime,omitempty"`
}

const (
	ErrIsDirectory = cerrs.Error("is directory")
	ErrIsNotAFile  = cerrs.Error("is not a file")
)

func Default() *Config {
	return &Config{
		RefParser: Command_t{
			Command: "nix-ref-dump",
		},
		CSTParser: Command_t{
			Command: "rnix-dump",
		},
	}
}

func Load(name string, debug bool) (*Config, error) {
	if debug {
		log.Printf("[config] %q: loading configuration...\n", name)
	}
	// create a config with default values for the application
	cfg := Default()
	if sb, err := os.Stat(name); errors.Is(err, os.ErrNotExist) || os.IsNotExist(err) {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if sb.Mode().IsDir() {
		return cfg, ErrIsDirectory
	} else if !sb.Mode().IsRegular() {
		return cfg, ErrIsNotAFile
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	if debug {
		log.Printf("[config] %q: loaded configuration\n", name)
	}
	return cfg, nil
}
