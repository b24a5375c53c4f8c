// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wordsmith/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models installed on the configured Ollama host",
	Long: `Models queries the configured endpoint for its installed models so a
briefing can name one that actually exists. Only Ollama hosts expose
this listing; hosted endpoints reject it.`,
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().String("base-url", "", "endpoint to query (default from config: base_url)")
	modelsCmd.Flags().Bool("json", false, "output the model list as JSON")

	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}

	models, err := llm.ListModels(context.Background(), nil, baseURL)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}

	if len(models) == 0 {
		fmt.Println("No models installed.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-40s  %12s  %s\n", "Name", "Size", "Modified")
	for _, m := range models {
		fmt.Fprintf(os.Stdout, "%-40s  %12d  %s\n", m.Name, m.Size, m.ModifiedAt)
	}
	return nil
}
