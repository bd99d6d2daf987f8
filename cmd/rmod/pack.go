package main

import (
	"fmt"
	"os"
	"path/filepath"

	"rmod/pkg/bundle"
	"rmod/pkg/manifest"
	"rmod/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func packCmd() *cobra.Command {
	var (
		unsigned bool
		noLint   bool
	)

	cmd := &cobra.Command{
		Use:   "pack <output> <manifest> <payload>",
		Short: "Pack a module manifest and binary into a bundle",
		Long: `Pack a module.toml manifest and a binary payload into a .rpiece bundle.
By default the bundle is signed (format version 2) with the resolved
marketplace key; --unsigned produces a version 1 bundle instead.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			outputPath, manifestPath, payloadPath := args[0], args[1], args[2]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			manifestBytes, err := os.ReadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}
			payloadBytes, err := os.ReadFile(payloadPath)
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}

			if !noLint {
				m, err := manifest.Parse(string(manifestBytes), manifest.ModuleSchema)
				if err != nil {
					return fmt.Errorf("%s: %w", manifestPath, err)
				}
				if diags := manifest.ValidateModule(m); len(diags) > 0 {
					for _, diag := range diags {
						fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("%s: %s", manifestPath, diag)))
					}
					return fmt.Errorf("manifest failed validation (%d problems)", len(diags))
				}
			}

			var key []byte
			if !unsigned {
				key = cfg.ResolveKey(keyFlag)
			}

			data, err := bundle.Encode(manifestBytes, payloadBytes, key)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(outputPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write bundle: %w", err)
			}

			logger.Info("packed bundle",
				zap.String("output", outputPath),
				zap.Bool("signed", !unsigned),
				zap.Int("manifest_bytes", len(manifestBytes)),
				zap.Int("payload_bytes", len(payloadBytes)))
			fmt.Printf("Wrote module bundle: %s (%s)\n", outputPath, utils.FormatDataSize(int64(len(data))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unsigned, "unsigned", false, "write an unsigned v1 bundle")
	cmd.Flags().BoolVar(&noLint, "no-lint", false, "skip manifest validation before packing")
	return cmd
}
