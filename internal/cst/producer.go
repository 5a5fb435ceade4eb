// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cst

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

// Producer shells out to the external CST dumper. The dumper reads Nix
// source on stdin (or from a file given as its final argument) and prints
// the CST as a single JSON document on stdout.
type Producer struct {
	command string
	args    []string
}

// NewProducer returns a producer for the given dumper command.
func NewProducer(command string, args ...string) *Producer {
	return &Producer{command: command, args: args}
}

// ParseString feeds the source to the dumper on stdin and decodes the CST.
func (p *Producer) ParseString(ctx context.Context, input string) (Node, error) {
	out, err := p.RawString(ctx, input)
	if err != nil {
		return nil, err
	}
	return Decode(out)
}

// ParseFile hands the file path to the dumper and decodes the CST.
func (p *Producer) ParseFile(ctx context.Context, path string) (Node, error) {
	out, err := p.RawFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return Decode(out)
}

// RawString returns the dumper's JSON without decoding it.
func (p *Producer) RawString(ctx context.Context, input string) ([]byte, error) {
	return p.run(ctx, strings.NewReader(input), p.args)
}

// RawFile returns the dumper's JSON for a file without decoding it.
func (p *Producer) RawFile(ctx context.Context, path string) ([]byte, error) {
	if sb, err := os.Stat(path); err != nil {
		return nil, err
	} else if !sb.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", cerrs.ErrNotAFile, path)
	}
	return p.run(ctx, nil, append(append([]string{}, p.args...), path))
}

func (p *Producer) run(ctx context.Context, stdin io.Reader, args []string) ([]byte, error) {
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
