// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wordsmith/internal/agent"
	"github.com/pdiddy/wordsmith/internal/artifacts"
	"github.com/pdiddy/wordsmith/internal/llm"
	"github.com/pdiddy/wordsmith/pkg/types"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Run the full writing pipeline for one briefing",
	Long: `Write runs a briefing through the complete pipeline and prints the
finalized text to stdout. Progress goes to stderr; every intermediate
artifact is archived under the output directory and in the run database.

The briefing comes from flags, from a JSON or YAML file via
--input-file, or both; flags override file values.`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().String("input-file", "", "briefing file (JSON or YAML)")
	writeCmd.Flags().String("title", "", "working title of the text")
	writeCmd.Flags().String("content", "", "raw notes or briefing text")
	writeCmd.Flags().String("content-file", "", "file holding the raw notes")
	writeCmd.Flags().String("text-type", "", "kind of text to produce (e.g. Blogartikel, Pressemitteilung)")
	writeCmd.Flags().Int("word-count", 800, "target length in words")
	writeCmd.Flags().Int("iterations", 2, "number of revision rounds (0 is valid)")
	writeCmd.Flags().String("audience", "", "addressed readership")
	writeCmd.Flags().String("tone", "", "desired tonality")
	writeCmd.Flags().String("register", "", "form of address: Sie or Du")
	writeCmd.Flags().String("variant", "", "language variant: DE-DE, DE-AT, or DE-CH")
	writeCmd.Flags().String("constraints", "", "free-text must/should requirements")
	writeCmd.Flags().Bool("sources-allowed", false, "permit citations in the text")
	writeCmd.Flags().String("seo-keywords", "", "comma-separated SEO keywords")
	writeCmd.Flags().String("model", "", "model identifier (default from config: model)")
	writeCmd.Flags().String("base-url", "", "OpenAI-compatible endpoint (default from config: base_url)")
	writeCmd.Flags().String("api-key", "", "endpoint credential (default from .secrets/api-key)")
	writeCmd.Flags().Int("context-length", 0, "context window in tokens (0 resolves from word count)")
	writeCmd.Flags().Int("token-limit", 0, "generation budget in tokens (0 resolves from word count)")
	writeCmd.Flags().String("output-dir", "output", "directory for per-run text artifacts")
	writeCmd.Flags().String("logs-dir", "logs", "directory for the run database")
	writeCmd.Flags().Bool("keep-compliance-notice", false, "retain [COMPLIANCE-HINWEIS: …] markers in the final text")

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	b, err := briefingFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := pipelineConfigFromFlags(cmd, b.WordCount)
	if err != nil {
		return err
	}

	store, err := artifacts.NewStore(cfg.OutputDir, cfg.LogsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	gateway := llm.NewClient(cfg.Model)

	// Normalization happens in the constructor so the archived briefing
	// is the one the run actually uses.
	keep, _ := cmd.Flags().GetBool("keep-compliance-notice")
	cfg.Policy.KeepComplianceNotice = keep

	a, err := agent.New(b, cfg, gateway, nil, os.Stderr)
	if err != nil {
		return err
	}

	ctx := context.Background()
	runID, err := store.CreateRun(ctx, a.Briefing())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "run %s started (model %s, target %d words, %d revision rounds)\n",
		runID, cfg.Model.Model, b.WordCount, b.Iterations)

	a.Attach(store.Sink(runID))

	res, err := a.Run(ctx)
	if err != nil {
		if cerr := store.CompleteRun(ctx, runID, "failed", types.RunMetadata{Title: a.Briefing().Title, Model: cfg.Model.Model}); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: marking run %s failed: %v\n", runID, cerr)
		}
		return err
	}

	if err := store.CompleteRun(ctx, runID, "succeeded", res.Metadata); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "run %s finished: %d words, %d compliance passes, artifacts in %s\n",
		runID, res.Metadata.FinalWordCount, len(res.Records), store.RunDir(runID))
	fmt.Println(res.FinalText)
	return nil
}

// briefingFromFlags assembles the briefing from --input-file and flags.
// Flags override file values so a stored briefing can be re-run with a
// different length or iteration count.
func briefingFromFlags(cmd *cobra.Command) (types.Briefing, error) {
	var b types.Briefing

	if path, _ := cmd.Flags().GetString("input-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return b, fmt.Errorf("reading input file: %w", err)
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &b)
		default:
			err = json.Unmarshal(data, &b)
		}
		if err != nil {
			return b, fmt.Errorf("parsing input file %s: %w", path, err)
		}
	}

	setString := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) || *dst == "" {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				*dst = v
			}
		}
	}
	setString("title", &b.Title)
	setString("content", &b.Content)
	setString("text-type", &b.TextType)
	setString("audience", &b.Audience)
	setString("tone", &b.Tone)
	setString("register", &b.Register)
	setString("variant", &b.Variant)
	setString("constraints", &b.Constraints)

	if path, _ := cmd.Flags().GetString("content-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return b, fmt.Errorf("reading content file: %w", err)
		}
		b.Content = string(data)
	}

	if cmd.Flags().Changed("word-count") || b.WordCount == 0 {
		b.WordCount, _ = cmd.Flags().GetInt("word-count")
	}
	if cmd.Flags().Changed("iterations") || b.Iterations == 0 {
		b.Iterations, _ = cmd.Flags().GetInt("iterations")
	}
	if cmd.Flags().Changed("sources-allowed") {
		b.SourcesAllowed, _ = cmd.Flags().GetBool("sources-allowed")
	}
	if kw, _ := cmd.Flags().GetString("seo-keywords"); kw != "" {
		b.SEOKeywords = splitKeywords(kw)
	}

	return b, nil
}

func splitKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// pipelineConfigFromFlags resolves the model connection and run
// directories. Context and token limits default from the target word
// count: at least 8192, scaled by 4 and 1.9 tokens per word.
func pipelineConfigFromFlags(cmd *cobra.Command, wordCount int) (types.PipelineConfig, error) {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = "llama3.1:8b"
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secretDefault("api-key", apiKey)

	contextLength, _ := cmd.Flags().GetInt("context-length")
	if contextLength <= 0 {
		contextLength = maxInt(8192, wordCount*4)
	}
	tokenLimit, _ := cmd.Flags().GetInt("token-limit")
	if tokenLimit <= 0 {
		tokenLimit = maxInt(8192, int(float64(wordCount)*1.9))
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	logsDir, _ := cmd.Flags().GetString("logs-dir")

	return types.PipelineConfig{
		Model: types.ModelConfig{
			Model:         model,
			BaseURL:       baseURL,
			APIKey:        apiKey,
			ContextLength: contextLength,
			TokenLimit:    tokenLimit,
		},
		Policy:    types.DefaultPolicy(),
		OutputDir: outputDir,
		LogsDir:   logsDir,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
