// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wordsmith CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wordsmith/internal/agent"
	"github.com/pdiddy/wordsmith/internal/llm"
	"github.com/pdiddy/wordsmith/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the secret
// value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the wordsmith CLI.
var rootCmd = &cobra.Command{
	Use:   "wordsmith",
	Short: "Unattended German text production pipeline",
	Long: `wordsmith turns a short briefing (title, raw notes, text type, style
parameters, target length) into a polished German text through a fixed
pipeline: briefing, idea improvement, outline with exact word budgets,
section drafting, rubric check with gated correction, bounded revision
rounds, and a compliance audit. Every intermediate artifact of a run is
archived for review.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wordsmith.yaml or ~/.config/wordsmith/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wordsmith")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wordsmith"))
		}
	}

	viper.SetEnvPrefix("WORDSMITH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exitCode maps an error to the process exit convention: 1 for agent or
// usage errors, 2 for configuration errors, 3 for provider failures.
func exitCode(err error) int {
	var verr *agent.ValidationError
	var perr *llm.ProviderError
	switch {
	case errors.As(err, &verr):
		return 2
	case errors.As(err, &perr):
		return 3
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
