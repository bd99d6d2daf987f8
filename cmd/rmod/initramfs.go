package main

import (
	"fmt"
	"os"

	"rmod/pkg/initramfs"
	"rmod/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func initramfsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initramfs <output> <input-dir>",
		Short: "Build a RUZZLEFS initramfs image from a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			outputPath, inputDir := args[0], args[1]

			info, err := os.Stat(inputDir)
			if err != nil {
				return fmt.Errorf("failed to stat input: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("input must be a directory: %s", inputDir)
			}

			entries, err := initramfs.CollectDir(inputDir)
			if err != nil {
				return err
			}
			image, err := initramfs.Build(entries)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, image, 0o644); err != nil {
				return fmt.Errorf("failed to write image: %w", err)
			}

			logger.Info("built initramfs",
				zap.Int("files", len(entries)),
				zap.String("output", outputPath))
			fmt.Printf("Wrote initramfs with %d files to %s (%s)\n",
				len(entries), outputPath, utils.FormatDataSize(int64(len(image))))
			return nil
		},
	}
}
