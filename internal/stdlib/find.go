// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package stdlib

import (
	"crypto/sha1"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type File_t struct {
	Path     string    // full path to file
	Name     string    // file name
	Hash     string    // SHA1 hash of the file contents
	Modified time.Time // last modified time, hopefully always UTC
}

// FindNixFiles returns a list of all Nix source files in the requested
// path, recursing into subdirectories when asked. The list is sorted by
// path.
func FindNixFiles(path string, recursive bool) ([]*File_t, error) {
	var list []*File_t

	if recursive {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".nix") {
				return nil
			}
			item, err := findInput(p)
			if err != nil {
				return err
			}
			list = append(list, item)
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".nix") {
				continue
			}
			item, err := findInput(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Path < list[j].Path
	})
	return list, nil
}

// FindNixFile collects metadata for a single input file.
func FindNixFile(path string) (*File_t, error) {
	return findInput(path)
}

// findInput collects metadata for a single input file.
func findInput(path string) (*File_t, error) {
	sb, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File_t{
		Path:     path,
		Name:     filepath.Base(path),
		Hash:     fmt.Sprintf("%x", sha1.Sum(data)),
		Modified: sb.ModTime().UTC(),
	}, nil
}
