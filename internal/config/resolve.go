package config

import (
	"path"
	"strings"

	"github.com/christosgalano/kqlctl/internal/model"
	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"go.uber.org/zap"
)

// ResolveOutputs determines the output specs that apply to a discovered
// query file. An entry matches by exact relative path, by basename
// equality, or by a subfolder pattern ("*/name", "**/name") contained in
// the entry's path. The exact path check runs first so unambiguous
// configurations always resolve to the intended entry; the looser
// fallbacks exist for configs that name files by basename only and can
// over-match when duplicate basenames live in different folders.
//
// The first matching entry with a non-empty output list wins. When
// nothing matches, the default applies: JSON to the console, unfiltered
// and uncompressed. The result is never empty.
func ResolveOutputs(cfg *model.Config, file string) []model.OutputSpec {
	patterns := []string{
		file,
		path.Join("*", file),
		"**/" + file,
	}

	for _, q := range cfg.Queries {
		if len(q.Output) == 0 {
			continue
		}
		if q.File == file || path.Base(q.File) == file || containsAny(q.File, patterns) {
			logger.Debug("Found specific output config", zap.String("file", file), zap.String("entry", q.File))
			return q.Output
		}
	}

	logger.Debug("Using default JSON output", zap.String("file", file))
	return []model.OutputSpec{{Format: model.FormatJSON}}
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
