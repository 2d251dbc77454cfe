package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crypto-scanner",
	Short: "Technical-analysis and opportunity-scanning engine for crypto markets",
}

func Execute() error {
	rootCmd.AddCommand(startCmd)
	return rootCmd.Execute()
}
