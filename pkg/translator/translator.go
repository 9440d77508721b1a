// Package translator holds the i18n bundle backing the API error
// envelopes; catalogs are TOML files, one per language, loaded at startup.
package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Translator is the shared bundle; pkg/apierrors localizes against it on
// every error response.
var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

// InitTranslator builds the bundle and loads every catalog file found in
// the translation folder. Load failures are logged, not fatal: a missing
// catalog degrades to the message key.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder",
			zap.String("folder", cfg.TranslationFolder),
			zap.Error(err),
		)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, entry.Name())); err != nil {
			zap.L().Warn("failed to load translation file",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
		}
	}
}
