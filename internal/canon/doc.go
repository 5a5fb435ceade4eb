// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package canon reduces JSON documents to a canonical form so the two
// parsers' encodings can be compared byte-for-byte. Re-encoding sorts
// object keys, preserves list order, and unifies numeric formatting by
// round-tripping numbers through their binary representation. Structural
// differences are reported as path-qualified diff lines.
package canon
