// Command seed writes a generated dataset to a JSON seed file that the
// server loads at startup.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"supplydash/internal/generator"
	"supplydash/internal/store"
)

func newRootCmd(stdout io.Writer) *cobra.Command {
	defaults := generator.DefaultOptions()
	var (
		output string
		opts   generator.Options
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic supply dataset",
		Long: `Generate suppliers, inventory, orders, compliance documents and events
and write them to a seed file. The same --seed always produces the same dataset
for a given day.

Examples:
  seed --output data/seed.json
  seed --orders 5000 --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))

			start := time.Now()
			data := generator.New(opts).Generate()
			if err := store.WriteSeedFile(output, data); err != nil {
				return fmt.Errorf("failed to write seed file: %w", err)
			}

			logger.Info("seed_written",
				"path", output,
				"suppliers", len(data.Suppliers),
				"inventory", len(data.Inventory),
				"orders", len(data.Orders),
				"compliance_docs", len(data.ComplianceDocs),
				"events", len(data.Events),
				"latency_ms", time.Since(start).Milliseconds(),
			)
			fmt.Fprintf(stdout, "Seed data written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "data/seed.json", "Seed file path")
	cmd.Flags().IntVar(&opts.SupplierCount, "suppliers", defaults.SupplierCount, "Number of suppliers")
	cmd.Flags().IntVar(&opts.InventoryCount, "inventory", defaults.InventoryCount, "Number of inventory items")
	cmd.Flags().IntVar(&opts.OrderCount, "orders", defaults.OrderCount, "Number of orders")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Random seed (0 seeds from the clock)")
	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
