// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package rast defines the reference-canonical abstract syntax tree: the
// shape the reference Nix parser emits after its parse-time desugarings.
// Arithmetic and comparison operators are already rewritten to calls on the reserved
// builtins __sub, __mul, __div, and __lessThan; addition and string
// interpolation are unified as OpConcatStrings; selects carry their fused
// or-default; applications are flattened n-ary; attribute sets carry a
// sorted static list plus an ordered dynamic list. Every node serializes
// deterministically to JSON with a "type" discriminator. The package also
// checks the structural invariants the normalizer guarantees.
package rast
