package cmd

import (
	"github.com/chrisdamba/bitesdash/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard views as JSON over HTTP",
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

		// fail fast on a broken dataset instead of on the first request
		if _, err := svc.Facts(cmd.Context()); err != nil {
			return err
		}
		return server.New(svc).Run(cmd.Context(), cfg.Server.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	viper.BindPFlag("server.listen_addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
