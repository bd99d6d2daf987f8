package index

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rmod/pkg/bundle"
	"rmod/pkg/manifest"
	"rmod/pkg/types"

	"go.uber.org/zap"
)

// ErrDuplicateName means two bundles in one batch claim the same module name.
var ErrDuplicateName = errors.New("duplicate module name")

const defaultWorkers = 4

// Builder aggregates verified bundles into a market index. A batch either
// produces a complete index or fails with the offending file: there is no
// skip-and-continue mode, because an index that silently omits a broken
// bundle misrepresents the marketplace.
type Builder struct {
	key      []byte
	workers  int
	validate bool
	logger   *zap.Logger
}

// NewBuilder returns a Builder verifying signatures with key. Schema
// validation of each manifest is on by default.
func NewBuilder(key []byte, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		key:      key,
		workers:  defaultWorkers,
		validate: true,
		logger:   logger,
	}
}

// WithWorkers sets how many bundles are decoded concurrently.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// WithValidation toggles schema validation of decoded manifests. Presence of
// name and version is enforced either way.
func (b *Builder) WithValidation(on bool) *Builder {
	b.validate = on
	return b
}

// Build decodes, verifies and parses every bundle path and returns the
// entries sorted by module name. Bundles are independent, so they are
// processed on a bounded worker pool; results are fully collected before the
// duplicate-name check and the sort so that ordering of failures and
// duplicates does not depend on scheduling. Any single failure aborts the
// whole batch.
func (b *Builder) Build(paths []string) ([]types.IndexEntry, error) {
	type result struct {
		entry types.IndexEntry
		err   error
	}
	results := make([]result, len(paths))

	sem := make(chan struct{}, b.workers)
	for i, path := range paths {
		sem <- struct{}{}
		go func(i int, path string) {
			defer func() { <-sem }()
			entry, err := b.scanBundle(path)
			results[i] = result{entry: entry, err: err}
		}(i, path)
	}
	for i := 0; i < cap(sem); i++ {
		sem <- struct{}{}
	}

	// First failure in discovery order wins.
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], res.err)
		}
	}

	seen := make(map[string]string, len(paths))
	entries := make([]types.IndexEntry, 0, len(paths))
	for i, res := range results {
		name := res.entry.Name
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: '%s' in %s and %s", ErrDuplicateName, name, prev, paths[i])
		}
		seen[name] = paths[i]
		entries = append(entries, res.entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	b.logger.Debug("built index", zap.Int("bundles", len(entries)))
	return entries, nil
}

func (b *Builder) scanBundle(path string) (types.IndexEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.IndexEntry{}, fmt.Errorf("failed to read bundle: %w", err)
	}

	bn, err := bundle.Decode(data, b.key)
	if err != nil {
		return types.IndexEntry{}, err
	}

	m, err := manifest.Parse(string(bn.Manifest), manifest.ModuleSchema)
	if err != nil {
		return types.IndexEntry{}, err
	}
	if b.validate {
		if diags := manifest.ValidateModule(m); len(diags) > 0 {
			return types.IndexEntry{}, fmt.Errorf("invalid manifest: %s", strings.Join(diags, "; "))
		}
	}

	rec := manifest.ModuleRecord(m)
	if rec.Name == "" || rec.Version == "" {
		return types.IndexEntry{}, fmt.Errorf("missing name/version")
	}

	b.logger.Debug("scanned bundle",
		zap.String("file", filepath.Base(path)),
		zap.String("name", rec.Name),
		zap.Bool("verified", bn.Verified))

	return types.IndexEntry{
		ModuleRecord: rec,
		Verified:     bn.Verified,
		File:         filepath.Base(path),
	}, nil
}

// Write serializes entries in the fixed index format: a header comment, then
// one [[piece]] block per entry with fields in the order name, version,
// slots, caps, verified, provides, depends, file. Downstream readers depend
// on this exact shape, so the output is byte-identical for the same entries.
func Write(w io.Writer, entries []types.IndexEntry) error {
	var sb strings.Builder
	sb.WriteString("# Auto-generated by rmod scan\n")
	for _, entry := range entries {
		sb.WriteString("\n[[piece]]\n")
		fmt.Fprintf(&sb, "name = %q\n", entry.Name)
		fmt.Fprintf(&sb, "version = %q\n", entry.Version)
		fmt.Fprintf(&sb, "slots = %s\n", formatList(entry.Slots))
		fmt.Fprintf(&sb, "caps = %s\n", formatList(entry.RequiresCaps))
		fmt.Fprintf(&sb, "verified = %t\n", entry.Verified)
		fmt.Fprintf(&sb, "provides = %s\n", formatList(entry.Provides))
		fmt.Fprintf(&sb, "depends = %s\n", formatList(entry.Depends))
		fmt.Fprintf(&sb, "file = %q\n", entry.File)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteFile writes the index to path, creating parent directories.
func WriteFile(path string, entries []types.IndexEntry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
