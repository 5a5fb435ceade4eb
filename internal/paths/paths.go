// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package paths

import (
	"fmt"
	"strings"

	"github.com/playbymail/nixdiff/cerrs"
)

// Anchor_e classifies the root of a path literal.
type Anchor_e int

const (
	Absolute Anchor_e = iota
	Relative
	Home
	Store
)

// EnumToString is a helper map for marshalling the enum
var EnumToString = map[Anchor_e]string{
	Absolute: "Absolute",
	Relative: "Relative",
	Home:     "Home",
	Store:    "Store",
}

func (e Anchor_e) String() string {
	if s, ok := EnumToString[e]; ok {
		return s
	}
	return fmt.Sprintf("Anchor(%d)", int(e))
}

// Split classifies a path literal by its anchor and strips the anchor
// syntax. Store paths lose their angle brackets, home paths lose the
// leading "~/", absolute and relative paths are returned as written.
func Split(literal string) (Anchor_e, string, error) {
	if inner, ok := strings.CutPrefix(literal, "<"); ok {
		tag, ok := strings.CutSuffix(inner, ">")
		if !ok {
			return Store, "", fmt.Errorf("%w: %q", cerrs.ErrUnclosedStorePath, literal)
		}
		return Store, tag, nil
	}
	if rest, ok := strings.CutPrefix(literal, "~/"); ok {
		return Home, rest, nil
	}
	if strings.HasPrefix(literal, "/") {
		return Absolute, literal, nil
	}
	return Relative, literal, nil
}

// Canonicalize removes "." segments and redundant separators, resolves
// ".." against its predecessor, and never pops past the root. A trailing
// slash is kept when the input had one; trailing slashes can't occur in
// user-written nix code, but they can appear here when resolving the
// literal head of an interpolated path such as `/foo/${"bar"}`.
func Canonicalize(path string) string {
	hasTrailingSlash := strings.HasSuffix(path, "/")

	var segs []string
	if strings.HasPrefix(path, "/") {
		// empty leading segment marks an absolute path
		segs = append(segs, "")
	}
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			// redundant separator or current dir
		case "..":
			if n := len(segs); n > 0 && segs[n-1] != "" {
				segs = segs[:n-1]
			}
		default:
			segs = append(segs, seg)
		}
	}

	if hasTrailingSlash {
		segs = append(segs, "")
	}

	res := strings.Join(segs, "/")
	if res == "" {
		return "/"
	}
	return res
}
