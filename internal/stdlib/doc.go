// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package stdlib provides file discovery and filesystem utilities for
// finding Nix source files. It returns file metadata including the SHA1
// hash of the contents, and provides generic existence-checking functions
// for directories and files.
package stdlib
