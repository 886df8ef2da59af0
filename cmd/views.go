package cmd

import (
	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/projection"
	"github.com/chrisdamba/bitesdash/internal/report"
	"github.com/spf13/cobra"
)

var (
	executiveFilters dashboard.CriteriaInput
	executiveJSON    bool

	managerFilters dashboard.CriteriaInput
	managerJSON    bool
	managerWhatIf  dashboard.WhatIf

	optionsJSON bool
)

var executiveCmd = &cobra.Command{
	Use:   "executive",
	Short: "Show GMV, AOV, repeat rate and discount burn with GMV by zone and cuisine",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := dashboard.ParseCriteria(executiveFilters)
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

		view, err := svc.Executive(cmd.Context(), criteria)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), executiveJSON, view, func() string { return report.Executive(view) })
	},
}

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Show delivery performance, the delay breakdown by zone and the what-if projection",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := dashboard.ParseCriteria(managerFilters)
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

		view, err := svc.Manager(cmd.Context(), criteria, managerWhatIf.Clamped())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), managerJSON, view, func() string { return report.Manager(view) })
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the available filter values and the order date span",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, cleanup, err := newService(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		opts, err := svc.Options(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), optionsJSON, opts, func() string { return report.Options(opts) })
	},
}

func init() {
	addFilterFlags(executiveCmd, &executiveFilters)
	executiveCmd.Flags().BoolVar(&executiveJSON, "json", false, "Print the view as JSON")

	addFilterFlags(managerCmd, &managerFilters)
	managerCmd.Flags().BoolVar(&managerJSON, "json", false, "Print the view as JSON")
	managerCmd.Flags().IntVar(&managerWhatIf.PrepReduction, "prep-reduction", projection.DefaultPrepReduction,
		"What-if reduction of food preparation time in minutes (1-15)")
	managerCmd.Flags().IntVar(&managerWhatIf.CancellationReduction, "cancel-reduction", projection.DefaultCancellationReduction,
		"What-if reduction of cancellations in percent (5-30)")

	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "Print the options as JSON")

	rootCmd.AddCommand(executiveCmd, managerCmd, optionsCmd)
}
