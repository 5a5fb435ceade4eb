// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package norm transforms the lossless CST produced by the external
// parser into the reference-canonical AST. It reproduces every rewrite
// the reference parser performs while parsing: comparison and arithmetic
// operators become calls to the reserved builtins __sub, __mul, __div,
// and __lessThan; addition and string interpolation become
// OpConcatStrings; nested applications flatten to a single n-ary call;
// compound attribute keys expand into nested sets which are then merged
// and sorted; selects fuse with their or-default; path literals resolve
// against the configured base and home directories. Normalization is a
// total function on well-formed input; errors indicate either an illegal
// source program or a bug in the CST producer.
package norm
