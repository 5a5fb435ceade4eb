// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cst defines the lossless Concrete Syntax Tree for the Nix
// expression language as produced by the external CST dumper. The tree
// preserves surface syntax: binary and unary operators keep their written
// form, attribute paths are sequences of attribute parts, string and path
// literals are sequences of interpolation parts, and select nodes carry
// their full path and optional default. The package also decodes the
// dumper's JSON wire form into the tree and shells out to the dumper
// itself. Nodes are plain immutable values; only well-formed trees are
// modeled (the producing parser accepted the input without error).
package cst
