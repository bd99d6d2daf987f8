package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"rmod/pkg/config"
)

// ErrDiscovery means an input path is neither a directory nor a bundle file.
var ErrDiscovery = errors.New("unsupported input")

// Discover expands the given inputs into bundle file paths. A directory
// contributes all of its *.rpiece files in lexicographic order; a file path
// must carry the bundle extension. Inputs are kept in the order given.
func Discover(inputs []string) ([]string, error) {
	var bundles []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}
		if info.IsDir() {
			found, err := discoverDir(input)
			if err != nil {
				return nil, err
			}
			bundles = append(bundles, found...)
			continue
		}
		if filepath.Ext(input) != config.BundleExt {
			return nil, fmt.Errorf("%w: %s", ErrDiscovery, input)
		}
		bundles = append(bundles, input)
	}
	return bundles, nil
}

func discoverDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var found []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != config.BundleExt {
			continue
		}
		found = append(found, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(found)
	return found, nil
}
