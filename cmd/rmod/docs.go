package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rmod/pkg/docs"
	"rmod/pkg/manifest"
	"rmod/pkg/types"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func docsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "docs <contracts-dir>",
		Short: "Generate Markdown reference docs from slot contracts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			contracts, err := loadContracts(args[0])
			if err != nil {
				return err
			}

			content := docs.Render(contracts)
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write docs: %w", err)
			}

			logger.Info("generated slot docs",
				zap.Int("contracts", len(contracts)),
				zap.String("output", output))
			fmt.Printf("Wrote slot docs: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join("docs", "slot_contracts.md"), "output markdown path")
	return cmd
}

// loadContracts parses and validates every slot contract in dir. The doc
// renderer only accepts validated records, so a single bad contract aborts
// the run.
func loadContracts(dir string) ([]types.SlotContract, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read contracts directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var contracts []types.SlotContract
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read contract: %w", err)
		}
		m, err := manifest.Parse(string(data), manifest.SlotContractSchema)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if diags := manifest.ValidateSlotContract(m); len(diags) > 0 {
			return nil, fmt.Errorf("%s: %s", path, strings.Join(diags, "; "))
		}
		contracts = append(contracts, manifest.SlotContractRecord(m))
	}
	return contracts, nil
}
