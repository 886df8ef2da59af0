package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bitesdash",
	Short: "Business intelligence dashboard for the BitesUAE food delivery platform",
	Long: `bitesdash loads the BitesUAE order exports (customers, restaurants, orders,
order items, delivery events and riders), joins them into an order fact table
and computes the executive and operations manager views.

Views can be printed to the terminal, served as JSON over HTTP or exported to
files, S3 or Kafka.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bitesdash.yaml or $HOME/bitesdash.yaml)")
	rootCmd.PersistentFlags().String("data-dir", ".", "Directory holding the six input CSV files")
	rootCmd.PersistentFlags().String("source", models.SourceLocal, "Dataset source: local, s3 or postgres")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
}

// Execute runs the root command until it finishes or the process receives
// an interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*models.Config, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return cfg, nil
}

// newService wires the configured dataset source behind a process-wide cache.
// The returned cleanup releases any connection the source holds.
func newService(ctx context.Context, cfg *models.Config) (*dashboard.Service, func(), error) {
	src, cleanup, err := dataset.NewSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return dashboard.NewService(dataset.NewCached(src)), cleanup, nil
}

func addFilterFlags(cmd *cobra.Command, in *dashboard.CriteriaInput) {
	cmd.Flags().StringVar(&in.From, "from", "", "First order date to include (YYYY-MM-DD), defaults to the earliest order")
	cmd.Flags().StringVar(&in.To, "to", "", "Last order date to include (YYYY-MM-DD), defaults to the latest order")
	cmd.Flags().StringSliceVar(&in.Cities, "city", nil, "Restaurant cities to include (repeatable)")
	cmd.Flags().StringSliceVar(&in.Zones, "zone", nil, "Restaurant zones to include (repeatable)")
	cmd.Flags().StringSliceVar(&in.Cuisines, "cuisine", nil, "Cuisine types to include (repeatable)")
	cmd.Flags().StringSliceVar(&in.Tiers, "tier", nil, "Restaurant tiers to include (repeatable)")
}

// render writes v as indented JSON when asJSON is set, otherwise the text
// produced by styled.
func render(w io.Writer, asJSON bool, v interface{}, styled func() string) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(w, styled())
	return err
}
