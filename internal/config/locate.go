package config

import (
	"os"
	"path/filepath"

	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	// ConfigFileBase is the base name of the run configuration file.
	ConfigFileBase = ".kql-config"
	// SchemaFileName is the schema document expected at the repository root.
	SchemaFileName = "kql-config-schema.json"
)

var configExtensions = []string{"yaml", "yml"}

// FindRepoRoot walks up from the given directory looking for a directory
// that contains a .git entry. It reports false when no ancestor qualifies.
func FindRepoRoot(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FindConfigFile locates the run configuration for a target folder. It
// checks the folder itself first, then the repository root. Not finding a
// config file is a valid outcome, not an error.
func FindConfigFile(folder string) (string, bool) {
	for _, ext := range configExtensions {
		candidate := filepath.Join(folder, ConfigFileBase+"."+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	root, ok := FindRepoRoot(folder)
	if !ok {
		return "", false
	}
	for _, ext := range configExtensions {
		candidate := filepath.Join(root, ConfigFileBase+"."+ext)
		if _, err := os.Stat(candidate); err == nil {
			logger.Debug("Found config file in repository root", zap.String("file", candidate))
			return candidate, true
		}
	}

	return "", false
}

// FindSchemaFile resolves the schema document for a config file: the
// explicit override if given, otherwise kql-config-schema.json at the
// repository root. It reports false when no schema is available.
func FindSchemaFile(configPath, override string) (string, bool) {
	if override != "" {
		return override, true
	}
	root, ok := FindRepoRoot(filepath.Dir(configPath))
	if !ok {
		return "", false
	}
	return filepath.Join(root, SchemaFileName), true
}
