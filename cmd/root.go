/*
Copyright © 2025 haiminh
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdf-insight-be",
	Short: "PDF ingestion and semantic retrieval backend",
	Long: `pdf-insight-be ingests PDFs from object storage, parses them with the
Docling API, embeds the extracted fragments and serves similarity search
over the stored vectors.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}
