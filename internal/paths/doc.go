// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package paths classifies Nix path literals by their anchor (absolute,
// relative, home, store) and canonicalizes path strings the way the
// reference parser does: "." and redundant separators are dropped, ".."
// pops one segment without ever popping past the root, and a trailing
// slash is preserved.
package paths
