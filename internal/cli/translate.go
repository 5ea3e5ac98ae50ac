package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyricsync/internal/config"
	"github.com/mgpai22/lyricsync/internal/lrc"
	"github.com/mgpai22/lyricsync/internal/translate"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [lrc_file]",
	Short: "Translate the lyrics of an LRC file using AI",
	Long: `Translate the lyric text of an existing .lrc file to another language.

Timestamps and metadata tags are preserved; only the lyric text changes.
Blank lines (instrumental breaks) are left as they are.

The --overlay flag writes bilingual lines with the translation first,
followed by the original text.

Provider, model, concurrency and batch size default to the
LYRICSYNC_PROVIDER, LYRICSYNC_MODEL, LYRICSYNC_CONCURRENCY and
LYRICSYNC_BATCH_SIZE environment variables (a .env file is read too).

Examples:
  lyricsync translate song.lrc --target-language japanese
  lyricsync translate song.lrc -t es --overlay
  lyricsync translate song.lrc -l english -t french --provider anthropic -o fr.lrc`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		Bool("overlay", false, "Overlay translated text with original (bilingual lyrics)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("prompt", "", "Additional instructions for the translator")
	translateCmd.Flags().
		Int("concurrency", 0, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 0, "Number of lyric lines per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	lrcPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	overlay, _ := cmd.Flags().GetBool("overlay")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	providerStr, _ := cmd.Flags().GetString("provider")
	prompt, _ := cmd.Flags().GetString("prompt")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(lrcPath); os.IsNotExist(err) {
		return fmt.Errorf("lyrics file not found: %s", lrcPath)
	}

	ext := strings.ToLower(filepath.Ext(lrcPath))
	if ext != lrc.Extension {
		return fmt.Errorf("unsupported lyrics format %q: use %s", ext, lrc.Extension)
	}

	if targetLang == "" {
		return fmt.Errorf("target language is required")
	}

	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	settings, err := resolveTranslateSettings(cfg, translateFlags{
		provider:      providerStr,
		apiKey:        apiKey,
		model:         model,
		modelOverride: modelOverride,
		concurrency:   concurrency,
		batchSize:     batchSize,
	})
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = translatedPath(lrcPath, targetLang, overlay)
	}

	logger.Infow("Starting lyric translation",
		"input", lrcPath,
		"output", outputPath,
		"target_language", targetLang,
		"input_language", inputLang,
		"overlay", overlay,
		"provider", settings.provider,
		"model", settings.model,
	)

	file, err := lrc.Open(lrcPath)
	if err != nil {
		return err
	}

	items := translate.ItemsFromLines(file.Lines)
	if len(items) == 0 {
		return fmt.Errorf("lyrics file contains no lyric text")
	}

	logger.Infow("Parsed lyrics file",
		"lines", len(file.Lines),
		"tags", len(file.Tags),
		"items", len(items),
	)

	opts := translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          settings.model,
		Prompt:         prompt,
		BatchSize:      settings.batchSize,
	}

	translator, err := translate.Factory(ctx, settings.provider, settings.apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translating lyrics",
		"items", len(items),
		"concurrency", settings.concurrency,
	)

	var results []translate.TranslationResult
	if concurrentTranslator, ok := translator.(translate.ConcurrentTranslator); ok {
		results, err = concurrentTranslator.TranslateWithConcurrency(
			ctx,
			items,
			settings.concurrency,
		)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	logger.Infow("Translation complete",
		"results", len(results),
	)

	lines, skipped := translate.ApplyResults(file.Lines, results, overlay)
	for _, index := range skipped {
		logger.Warnw("Skipping invalid result index",
			"index", index,
			"max", len(file.Lines)-1,
		)
	}

	logger.Infow("Writing output file")
	n, err := lrc.NewWriter(file.Tags...).Write(lines, outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Lyrics translated successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Lines: %d\n", n)
	fmt.Fprintf(out, "  Target language: %s\n", targetLang)
	if overlay {
		fmt.Fprintf(out, "  Mode: bilingual overlay\n")
	}

	return nil
}

// values given on the command line; zero values fall back to config
type translateFlags struct {
	provider      string
	apiKey        string
	model         string
	modelOverride bool
	concurrency   int
	batchSize     int
}

type translateSettings struct {
	provider    translate.Provider
	apiKey      string
	model       string
	concurrency int
	batchSize   int
}

// merges flags over config and validates the result
func resolveTranslateSettings(c config.Config, f translateFlags) (translateSettings, error) {
	s := translateSettings{
		provider:    translate.Provider(strings.ToLower(strings.TrimSpace(f.provider))),
		apiKey:      f.apiKey,
		model:       f.model,
		concurrency: f.concurrency,
		batchSize:   f.batchSize,
	}

	if s.provider == "" {
		s.provider = translate.Provider(c.Provider)
	}
	switch s.provider {
	case translate.ProviderGemini, translate.ProviderOpenAI, translate.ProviderAnthropic:
	default:
		return s, fmt.Errorf(
			"unsupported translation provider %q: use gemini, openai, or anthropic",
			s.provider,
		)
	}

	if s.apiKey == "" {
		s.apiKey = c.APIKey(string(s.provider))
	}
	if s.apiKey == "" {
		return s, fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			config.APIKeyEnv(string(s.provider)),
		)
	}

	if s.model == "" {
		s.model = c.Model
	}
	if s.model != "" && !f.modelOverride && !isValidModel(s.provider, s.model) {
		return s, fmt.Errorf(
			"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
			s.provider,
			s.model,
			strings.Join(supportedModels[s.provider], ", "),
		)
	}

	if s.concurrency == 0 {
		s.concurrency = c.Concurrency
	}
	if s.batchSize == 0 {
		s.batchSize = c.BatchSize
	}
	if s.concurrency <= 0 {
		return s, fmt.Errorf("concurrency must be positive, got %d", s.concurrency)
	}
	if s.batchSize <= 0 {
		return s, fmt.Errorf("batch-size must be positive, got %d", s.batchSize)
	}

	return s, nil
}

// song.lrc -> song.<lang>.lrc, or song.<lang>.overlay.lrc
func translatedPath(lrcPath, targetLang string, overlay bool) string {
	ext := filepath.Ext(lrcPath)
	baseName := strings.TrimSuffix(lrcPath, ext)
	lang := strings.ToLower(strings.TrimSpace(targetLang))
	if overlay {
		return fmt.Sprintf("%s.%s.overlay%s", baseName, lang, ext)
	}
	return fmt.Sprintf("%s.%s%s", baseName, lang, ext)
}
