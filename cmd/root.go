// Package cmd defines the lajournal command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lajournal",
	Short: "LaJournal - a personal journaling backend",
	Long:  `LaJournal is a personal journaling backend: dated entries of ordered paragraphs, paragraph labels, search, stats and timelines over an HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.lajournal/config.yaml)")
}

func Execute() error {
	return rootCmd.Execute()
}
