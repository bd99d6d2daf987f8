package initramfs

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// Image layout: 10-byte header ("RUZZLEFS" magic, LE u16 version, LE u16
// entry count), then per entry a LE u16 name length, LE u64 data length, the
// name bytes and the data bytes, zero-padded so the image is 8-byte aligned
// after every entry. This archive format is consumed by the kernel's early
// boot loader and is unrelated to the RMOD bundle container.
const (
	Version   = 1
	alignment = 8
)

var magic = []byte("RUZZLEFS")

// Entry is one file in the image, named by its slash-separated relative path.
type Entry struct {
	Name string
	Data []byte
}

// CollectDir gathers every regular file under dir, named by its relative
// POSIX path, sorted by name.
func CollectDir(dir string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Build serializes entries into image bytes.
func Build(entries []Entry) ([]byte, error) {
	if len(entries) > math.MaxUint16 {
		return nil, fmt.Errorf("too many entries: %d", len(entries))
	}

	image := make([]byte, 0, imageSizeHint(entries))
	image = append(image, magic...)
	image = binary.LittleEndian.AppendUint16(image, Version)
	image = binary.LittleEndian.AppendUint16(image, uint16(len(entries)))

	for _, entry := range entries {
		name := []byte(entry.Name)
		if len(name) > math.MaxUint16 {
			return nil, fmt.Errorf("entry name too long: %s", entry.Name)
		}
		image = binary.LittleEndian.AppendUint16(image, uint16(len(name)))
		image = binary.LittleEndian.AppendUint64(image, uint64(len(entry.Data)))
		image = append(image, name...)
		image = append(image, entry.Data...)
		for len(image)%alignment != 0 {
			image = append(image, 0)
		}
	}
	return image, nil
}

func imageSizeHint(entries []Entry) int {
	size := len(magic) + 4
	for _, entry := range entries {
		size += 2 + 8 + len(entry.Name) + len(entry.Data) + alignment
	}
	return size
}
