// Package main is the entry point for the battle server and tooling
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nyanko-battle",
	Short: "Nyanko battle engine",
	Long:  `Nyanko battle resolves deterministic turn-based cat battles over gRPC or locally from YAML rosters.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(clientCmd)
}
