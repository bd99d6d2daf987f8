package initramfs

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyImage(t *testing.T) {
	image, err := Build(nil)
	require.NoError(t, err)
	require.Len(t, image, 12)
	assert.Equal(t, []byte("RUZZLEFS"), image[:8])
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(image[8:10]))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(image[10:12]))
}

func TestBuildSingleEntryLayout(t *testing.T) {
	image, err := Build([]Entry{{Name: "bin/init", Data: []byte("ELF!")}})
	require.NoError(t, err)

	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(image[10:12]))

	// Entry header follows the 12-byte image header.
	nameLen := binary.LittleEndian.Uint16(image[12:14])
	dataLen := binary.LittleEndian.Uint64(image[14:22])
	assert.Equal(t, uint16(8), nameLen)
	assert.Equal(t, uint64(4), dataLen)
	assert.Equal(t, "bin/init", string(image[22:30]))
	assert.Equal(t, "ELF!", string(image[30:34]))

	// Zero-padded to the 8-byte boundary.
	assert.Equal(t, 0, len(image)%8)
	for _, b := range image[34:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestBuildEveryEntryStartsAligned(t *testing.T) {
	entries := []Entry{
		{Name: "a", Data: []byte("x")},
		{Name: "bb", Data: []byte("yyy")},
		{Name: "ccc", Data: make([]byte, 13)},
	}
	image, err := Build(entries)
	require.NoError(t, err)
	assert.Equal(t, 0, len(image)%8)

	offset := 12
	for i, entry := range entries {
		if i > 0 {
			require.Equal(t, 0, offset%8)
		}
		nameLen := int(binary.LittleEndian.Uint16(image[offset : offset+2]))
		dataLen := int(binary.LittleEndian.Uint64(image[offset+2 : offset+10]))
		assert.Equal(t, len(entry.Name), nameLen)
		assert.Equal(t, len(entry.Data), dataLen)
		offset += 2 + 8 + nameLen + dataLen
		for offset%8 != 0 {
			assert.Equal(t, byte(0), image[offset])
			offset++
		}
	}
	assert.Equal(t, len(image), offset)
}

func TestCollectDirSortsByRelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zfile"), []byte("z"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "init"), []byte("i"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "afile"), []byte("a"), 0o644))

	entries, err := CollectDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "afile", entries[0].Name)
	assert.Equal(t, "bin/init", entries[1].Name)
	assert.Equal(t, "zfile", entries[2].Name)
}
