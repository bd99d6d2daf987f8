package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rmod/pkg/manifest"

	"github.com/spf13/cobra"
)

func lintCmd() *cobra.Command {
	var slots bool

	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Lint module manifests or slot contracts",
		Long: `Lint module.toml manifests against the module schema, or with --slots,
slot contract files against the slot-contract schema. Directories are
expanded: recursively to module.toml files for modules, to *.toml files for
slot contracts. All problems across all targets are reported before exiting.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := collectLintTargets(args, slots)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				return fmt.Errorf("no manifest files found")
			}

			var problems []string
			for _, target := range targets {
				problems = append(problems, lintFile(target, slots)...)
			}

			if len(problems) > 0 {
				for _, problem := range problems {
					fmt.Fprintln(os.Stderr, errStyle.Render(problem))
				}
				return fmt.Errorf("%d problems found", len(problems))
			}

			for _, target := range targets {
				fmt.Println(okStyle.Render("ok: ") + target)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&slots, "slots", false, "lint slot contracts instead of module manifests")
	return cmd
}

// lintFile parses and validates one manifest. Grammar errors short-circuit
// the file; schema diagnostics are collected so one run reports every
// violation.
func lintFile(path string, slots bool) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("%s: cannot read file: %v", path, err)}
	}

	schema := manifest.ModuleSchema
	if slots {
		schema = manifest.SlotContractSchema
	}
	m, err := manifest.Parse(string(data), schema)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", path, err)}
	}

	var diags []string
	if slots {
		diags = manifest.ValidateSlotContract(m)
	} else {
		diags = manifest.ValidateModule(m)
	}

	problems := make([]string, 0, len(diags))
	for _, diag := range diags {
		problems = append(problems, fmt.Sprintf("%s: %s", path, diag))
	}
	return problems
}

func collectLintTargets(paths []string, slots bool) ([]string, error) {
	var targets []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}
		if !info.IsDir() {
			targets = append(targets, path)
			continue
		}
		found, err := expandLintDir(path, slots)
		if err != nil {
			return nil, err
		}
		targets = append(targets, found...)
	}
	return targets, nil
}

// expandLintDir finds manifest files under dir: every module.toml recursively
// for module lints, every top-level *.toml for slot contract lints.
func expandLintDir(dir string, slots bool) ([]string, error) {
	var found []string
	if slots {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
				continue
			}
			found = append(found, filepath.Join(dir, entry.Name()))
		}
	} else {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && d.Name() == "module.toml" {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}
	sort.Strings(found)
	return found, nil
}
