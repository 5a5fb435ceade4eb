// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package sqlite

import "github.com/playbymail/nixdiff/internal/results"

type Run_t struct {
	ID         string
	StartedAt  string
	FinishedAt string
	BasePath   string
	HomePath   string
}

type Result_t struct {
	RunID   string
	Path    string
	Hash    string
	Outcome results.Outcome_e
	Detail  string
}
