// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package refparser shells out to the reference Nix parser wrapper. The
// wrapper reads Nix source on stdin (or from a file given as its final
// argument) and prints the reference parser's canonical JSON on stdout.
// Wrapper failures are reported as parse errors so the driver can keep
// them distinct from comparator mismatches.
package refparser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/playbymail/nixdiff/cerrs"
)

// Parser invokes the external reference-parser wrapper.
type Parser struct {
	command string
	args    []string
}

// New returns a parser for the given wrapper command.
func New(command string, args ...string) *Parser {
	return &Parser{command: command, args: args}
}

// ParseString feeds the source to the wrapper on stdin and returns the
// reference JSON.
func (p *Parser) ParseString(ctx context.Context, input string) ([]byte, error) {
	return p.run(ctx, strings.NewReader(input), p.args)
}

// ParseFile hands the file path to the wrapper and returns the reference
// JSON. The wrapper resolves relative path literals against the file's
// directory.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]byte, error) {
	if sb, err := os.Stat(path); err != nil {
		return nil, err
	} else if !sb.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", cerrs.ErrNotAFile, path)
	}
	return p.run(ctx, nil, append(append([]string{}, p.args...), path))
}

func (p *Parser) run(ctx context.Context, stdin io.Reader, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.command, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v: %s", cerrs.ErrParseFailed, p.command, err, strings.TrimSpace(stderr.String()))
	}
	out := bytes.TrimSpace(stdout.Bytes())
	if !json.Valid(out) {
		return nil, fmt.Errorf("%w: %s", cerrs.ErrMalformedOutput, p.command)
	}
	return out, nil
}
