// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package iso discovers ISO images in the configured directories.
package iso

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// DefaultBootParams are the kernel parameters suggested for a freshly
// discovered image.
const DefaultBootParams = "quiet splash"

// Image is one discovered ISO image.
type Image struct {
	Title     string `json:"title"`
	Path      string `json:"path"`
	SizeBytes uint64 `json:"size_bytes"`
	Params    string `json:"params"`
}

// Scan walks the given directories (one level of subdirectories deep) for
// *.iso files. Missing directories are skipped; the result is sorted
// case-insensitively by title.
func Scan(dirs []string) ([]Image, error) {
	var images []Image

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, xerrors.Io("reading %s: %v", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			if !entry.IsDir() {
				images = appendImage(images, path)

				continue
			}

			subEntries, err := os.ReadDir(path)
			if err != nil {
				continue
			}

			for _, sub := range subEntries {
				if !sub.IsDir() {
					images = appendImage(images, filepath.Join(path, sub.Name()))
				}
			}
		}
	}

	sort.SliceStable(images, func(i, j int) bool {
		return strings.ToLower(images[i].Title) < strings.ToLower(images[j].Title)
	})

	return images, nil
}

func appendImage(images []Image, path string) []Image {
	if !strings.EqualFold(filepath.Ext(path), ".iso") {
		return images
	}

	info, err := os.Stat(path)
	if err != nil {
		return images
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return append(images, Image{
		Title:     title,
		Path:      path,
		SizeBytes: uint64(info.Size()),
		Params:    DefaultBootParams,
	})
}
