package cmd

import (
	"errors"
	"log"

	"github.com/chrisdamba/bitesdash/internal/factories"
	"github.com/chrisdamba/bitesdash/internal/repositories/postgres"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	generateOut      string
	generatePostgres bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic BitesUAE dataset",
	Long: `Generate writes the six input CSV files of a synthetic dataset to --out
(default: the configured data directory). With --postgres the same tables are
also loaded into the configured database, replacing its contents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gen, err := factories.NewGenerator(cfg.Generator)
		if err != nil {
			return err
		}
		tables := gen.Generate()

		out := generateOut
		if out == "" {
			out = cfg.DataDir
		}
		if err := factories.WriteCSV(out, tables); err != nil {
			return err
		}
		log.Printf("Wrote %d customers, %d restaurants, %d riders and %d orders to %s",
			len(tables.Customers), len(tables.Restaurants), len(tables.Riders), len(tables.Orders), out)

		if !generatePostgres {
			return nil
		}
		if cfg.Database.URL == "" {
			return errors.New("--postgres needs database.url to be set")
		}
		pool, err := postgres.Connect(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(cmd.Context(), pool); err != nil {
			return err
		}
		if err := factories.Seed(cmd.Context(), postgres.NewRepositories(pool), tables); err != nil {
			return err
		}
		log.Printf("Seeded database with %d orders", len(tables.Orders))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Directory to write the CSV files to")
	generateCmd.Flags().BoolVar(&generatePostgres, "postgres", false, "Also load the dataset into Postgres")
	generateCmd.Flags().Int64("seed", 42, "Random seed")
	generateCmd.Flags().Int("orders", 5000, "Number of orders")
	generateCmd.Flags().String("start-date", "2024-01-01", "First order date (YYYY-MM-DD)")
	generateCmd.Flags().String("end-date", "2024-03-31", "Last order date (YYYY-MM-DD)")

	viper.BindPFlag("generator.seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("generator.orders", generateCmd.Flags().Lookup("orders"))
	viper.BindPFlag("generator.start_date", generateCmd.Flags().Lookup("start-date"))
	viper.BindPFlag("generator.end_date", generateCmd.Flags().Lookup("end-date"))

	rootCmd.AddCommand(generateCmd)
}
