package main

import (
	"fmt"

	"rmod/pkg/index"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func scanCmd() *cobra.Command {
	var (
		inputs  []string
		output  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Build a market index from .rpiece bundles",
		Long: `Scan bundles into an index.toml market index. Every bundle must decode,
verify and validate; a single bad bundle or a duplicate module name aborts
the run and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				inputs = []string{cfg.ModulesDir}
			}
			if output == "" {
				output = cfg.IndexPath
			}

			paths, err := index.Discover(inputs)
			if err != nil {
				return err
			}
			logger.Debug("discovered bundles", zap.Int("count", len(paths)))

			builder := index.NewBuilder(cfg.ResolveKey(keyFlag), logger).WithWorkers(workers)
			entries, err := builder.Build(paths)
			if err != nil {
				return err
			}

			if err := index.WriteFile(output, entries); err != nil {
				return err
			}

			if len(entries) > 0 {
				fmt.Println(renderIndexTable(entries))
			}
			fmt.Printf("Wrote market index: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "directory or .rpiece file to scan (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output index.toml path")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent bundle decoders (default 4)")
	return cmd
}
