package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynatop",
		Short: "dynatop - distributed storage-based catchment rainfall-runoff simulation",
		Long: `dynatop runs a Dynamic TOPMODEL simulation over a catchment discretised
into hydrologically similar response units, producing an outlet discharge
series with per-unit fluxes and storages.`,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
