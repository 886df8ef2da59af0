package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/output"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportFilters dashboard.CriteriaInput

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered order facts and both views to csv, json, parquet, kafka or the console",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := dashboard.ParseCriteria(exportFilters)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, cleanup, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		facts, criteria, err := svc.Filtered(cmd.Context(), criteria)
		if err != nil {
			return err
		}
		exec := dashboard.BuildExecutive(facts, criteria)
		mgr := dashboard.BuildManager(facts, criteria, dashboard.DefaultWhatIf())

		dst, err := output.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(len(facts)), "exporting order facts")
		summary, err := output.Export(dst, facts, exec, mgr, func() { _ = bar.Add(1) })
		_ = bar.Finish()
		if closeErr := dst.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %s output: %w", cfg.Output.Format, closeErr)
		}
		if err != nil {
			return err
		}

		topics := make([]string, 0, len(summary))
		for topic := range summary {
			topics = append(topics, topic)
		}
		sort.Strings(topics)
		for _, topic := range topics {
			log.Printf("%s: %d messages", topic, summary[topic])
		}
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd, &exportFilters)
	exportCmd.Flags().String("format", "csv", "Output format: csv, json, parquet, kafka or console")
	exportCmd.Flags().String("out", "output", "Base directory for file formats")
	exportCmd.Flags().String("destination", "local", "Parquet destination: local or s3")

	viper.BindPFlag("output.format", exportCmd.Flags().Lookup("format"))
	viper.BindPFlag("output.path", exportCmd.Flags().Lookup("out"))
	viper.BindPFlag("output.destination", exportCmd.Flags().Lookup("destination"))

	rootCmd.AddCommand(exportCmd)
}
