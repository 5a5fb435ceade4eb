// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package results defines the Outcome_e enum for conformance-check
// outcomes such as Equal, Mismatch, RefParserError, CSTError, and
// NormalizeError. It provides string conversion and JSON marshaling for
// outcome types used to track how each input resolved during a run, so
// producer regressions are never conflated with normalization
// disagreements.
package results
