// Package discovery determines the final set of query files for a run.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/christosgalano/kqlctl/internal/model"
	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"go.uber.org/zap"
)

// Discover returns the query files applicable to a run, as paths relative
// to the target folder.
//
// With no configured queries, the folder is walked recursively and every
// .kql file is collected. With configured queries, exactly those files
// are used: entries missing on disk are skipped with a warning, never an
// abort. An empty result means the run has nothing to do.
func Discover(folder string, cfg *model.Config) ([]string, error) {
	if cfg == nil || len(cfg.Queries) == 0 {
		return walkFolder(folder)
	}

	var files []string
	for _, q := range cfg.Queries {
		full := filepath.Join(folder, q.File)
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			logger.Warn("Query file does not exist", zap.String("file", q.File))
			continue
		}
		files = append(files, q.File)
	}

	if len(files) == 0 {
		logger.Warn("No valid query files found in configuration")
	}
	return files, nil
}

func walkFolder(folder string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), model.QueryFileExtension) {
			return nil
		}
		rel, err := filepath.Rel(folder, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk folder %s: %w", folder, err)
	}
	return files, nil
}
