// Package normalize strips the ordering prefix ("01-Monday.wav" ->
// "Monday.wav") from recordings in each category directory.
package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"saytime/log"
)

const Ext = ".wav"

type Options struct {
	DryRun bool
}

// Rename describes one file move inside a category directory.
type Rename struct {
	Dir       string
	From      string
	To        string
	Collision bool // To already existed and was overwritten
}

// NewName returns the part after the first '-' when the name has one, and
// name unchanged otherwise. Anything after a second '-' is dropped.
func NewName(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) > 1 {
		return parts[1]
	}
	return parts[0]
}

// Run renames the .wav files in every direct subdirectory of root. Files whose
// name does not change are left alone and not reported.
func Run(root string, opts Options) ([]Rename, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}

	var renames []Rename
	for _, d := range dirs {
		dir := filepath.Join(root, d.Name())
		// Stat follows symlinks; the DirEntry type does not.
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}
		files, err := os.ReadDir(dir)
		if err != nil {
			return renames, fmt.Errorf("reading %s: %w", dir, err)
		}

		for _, f := range files {
			if !strings.HasSuffix(f.Name(), Ext) {
				continue
			}
			if fi, err := os.Stat(filepath.Join(dir, f.Name())); err != nil || !fi.Mode().IsRegular() {
				continue
			}
			to := NewName(f.Name())
			if to == f.Name() {
				continue
			}

			r := Rename{Dir: dir, From: f.Name(), To: to}
			if _, err := os.Stat(filepath.Join(dir, to)); err == nil {
				r.Collision = true
			}
			if !opts.DryRun {
				if err := os.Rename(filepath.Join(dir, r.From), filepath.Join(dir, r.To)); err != nil {
					return renames, fmt.Errorf("renaming %s: %w", r.From, err)
				}
			}
			log.Renamed(filepath.Join(dir, r.From), filepath.Join(dir, r.To), r.Collision)
			renames = append(renames, r)
		}
	}
	return renames, nil
}
