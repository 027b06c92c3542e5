package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/carlot/internal/config"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/seed"
	"github.com/zjrosen/carlot/internal/ui/table"
)

const demoWidth = 100

var demoPlain bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Load cars and print them without the menu",
	Long: `Load the seed file, or the built-in two car sample when none is set,
into a fresh lot and print every car.

Examples:
  carlot demo
  carlot demo --seed cars.yaml
  carlot demo --plain            # One Car(...) line per car`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		closeLog, err := initLogging(cfg, debugEnabled())
		if err != nil {
			return err
		}
		defer closeLog()

		provider, err := newTracingProvider(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = provider.Shutdown(context.Background()) }()

		return runDemo(cmd.Context(), cmd.OutOrStdout(), cfg, provider.Tracer(), demoPlain)
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoPlain, "plain", false, "print Car(...) lines instead of a table")
	rootCmd.AddCommand(demoCmd)
}

// runDemo fills a catalog and writes its listing to w.
func runDemo(ctx context.Context, w io.Writer, c config.Config, tracer trace.Tracer, plain bool) error {
	svc, err := newCatalog(ctx, c, tracer, nil)
	if err != nil {
		return err
	}
	if c.SeedFile == "" {
		svc.Seed(ctx, seed.Sample())
		log.Debug(log.CatSeed, "loaded built-in sample")
	}

	cars := svc.List(ctx)
	if len(cars) == 0 {
		_, err := fmt.Fprintln(w, "No cars stored.")
		return err
	}

	if !plain {
		_, err := fmt.Fprintln(w, table.Cars(cars, demoWidth))
		return err
	}
	for _, stored := range cars {
		if _, err := fmt.Fprintln(w, stored.String()); err != nil {
			return err
		}
	}
	return nil
}
