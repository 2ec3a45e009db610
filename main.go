package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/rm-hull/product-sheets/cmd"
)

func main() {
	var port int
	var debug bool

	rootCmd := &cobra.Command{
		Use:          "product-sheets",
		Short:        "Product catalog backed by a published spreadsheet",
		SilenceUsage: true,
	}

	apiServerCmd := &cobra.Command{
		Use:   "api-server",
		Short: "Start HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(port, debug)
		},
	}
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch the product sheet once and print it as JSON",
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.Import(c.Context(), c.OutOrStdout())
		},
	}

	showCmd := &cobra.Command{
		Use:   "show KEY",
		Short: "Show the product dialog for KEY in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Show(c.Context(), c.OutOrStdout(), args[0])
		},
	}

	rootCmd.AddCommand(apiServerCmd, importCmd, showCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
