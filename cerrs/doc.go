// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string type.
// It centralizes common error messages used throughout the application for
// domain-specific failures such as attribute merge conflicts, parser shim
// failures, and violated producer invariants. The Error type supports
// comparison via errors.Is().
package cerrs
