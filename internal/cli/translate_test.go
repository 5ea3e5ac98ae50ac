package cli

import (
	"testing"

	"github.com/mgpai22/lyricsync/internal/config"
	"github.com/mgpai22/lyricsync/internal/translate"
)

func TestTranslatedPath(t *testing.T) {
	tests := []struct {
		path    string
		lang    string
		overlay bool
		want    string
	}{
		{"song.lrc", "ja", false, "song.ja.lrc"},
		{"song.lrc", "Japanese", true, "song.japanese.overlay.lrc"},
		{"dir/a.b.lrc", " es ", false, "dir/a.b.es.lrc"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := translatedPath(tt.path, tt.lang, tt.overlay); got != tt.want {
				t.Errorf("translatedPath(%q, %q, %v) = %q, want %q",
					tt.path, tt.lang, tt.overlay, got, tt.want)
			}
		})
	}
}

func TestIsValidModel(t *testing.T) {
	tests := []struct {
		provider translate.Provider
		model    string
		want     bool
	}{
		{translate.ProviderGemini, "gemini-2.5-flash", true},
		{translate.ProviderGemini, " gemini-2.5-pro ", true},
		{translate.ProviderGemini, "gpt-5", false},
		{translate.ProviderOpenAI, "gpt-5-mini", true},
		{translate.ProviderOpenAI, "gpt-4", false},
		{translate.ProviderAnthropic, "claude-haiku-4-5", true},
		{translate.Provider("other"), "anything", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider)+"/"+tt.model, func(t *testing.T) {
			if got := isValidModel(tt.provider, tt.model); got != tt.want {
				t.Errorf("isValidModel(%q, %q) = %v, want %v",
					tt.provider, tt.model, got, tt.want)
			}
		})
	}
}

func TestResolveTranslateSettings(t *testing.T) {
	base := config.Config{
		GeminiAPIKey: "gem-key",
		OpenAIAPIKey: "oa-key",
		Provider:     "gemini",
		Concurrency:  3,
		BatchSize:    50,
	}

	t.Run("config defaults", func(t *testing.T) {
		s, err := resolveTranslateSettings(base, translateFlags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.provider != translate.ProviderGemini || s.apiKey != "gem-key" {
			t.Errorf("unexpected provider/key: %+v", s)
		}
		if s.concurrency != 3 || s.batchSize != 50 {
			t.Errorf("unexpected limits: %+v", s)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		s, err := resolveTranslateSettings(base, translateFlags{
			provider:    "OpenAI",
			model:       "gpt-5",
			concurrency: 8,
			batchSize:   10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.provider != translate.ProviderOpenAI || s.apiKey != "oa-key" || s.model != "gpt-5" {
			t.Errorf("unexpected settings: %+v", s)
		}
		if s.concurrency != 8 || s.batchSize != 10 {
			t.Errorf("unexpected limits: %+v", s)
		}
	})

	t.Run("model override", func(t *testing.T) {
		if _, err := resolveTranslateSettings(base, translateFlags{model: "custom"}); err == nil {
			t.Error("expected error for unknown model")
		}
		if _, err := resolveTranslateSettings(base, translateFlags{model: "custom", modelOverride: true}); err != nil {
			t.Errorf("override should accept any model: %v", err)
		}
	})

	errCases := []struct {
		name  string
		cfg   config.Config
		flags translateFlags
	}{
		{"unknown provider", base, translateFlags{provider: "deepl"}},
		{"missing key", base, translateFlags{provider: "anthropic"}},
		{"negative concurrency", base, translateFlags{concurrency: -1}},
		{"zero batch size from config", config.Config{GeminiAPIKey: "k", Provider: "gemini", Concurrency: 1}, translateFlags{}},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveTranslateSettings(tt.cfg, tt.flags); err == nil {
				t.Error("expected error")
			}
		})
	}
}
