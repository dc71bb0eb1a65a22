package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/christosgalano/kqlctl/internal/model"
	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Load reads, validates, and converts a run configuration file.
//
// The file is parsed as YAML and, when a schema document is available,
// validated against it before conversion into the typed model. A missing
// schema only downgrades to a warning; every other failure aborts the
// load. No partial configuration is ever returned.
func Load(configPath, schemaPath string) (*model.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", configPath, err)
	}

	schemaFile, ok := FindSchemaFile(configPath, schemaPath)
	if ok {
		if _, err := os.Stat(schemaFile); err != nil {
			logger.Warn("Schema file not found, skipping validation", zap.String("schema", schemaFile))
		} else if err := validateAgainstSchema(tree, schemaFile); err != nil {
			return nil, fmt.Errorf("config validation failed for %s: %w", configPath, err)
		}
	} else {
		logger.Warn("No schema file available, skipping validation")
	}

	configDir := filepath.Dir(configPath)
	cfg, err := convert(tree, configDir)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return cfg, nil
}

// validateAgainstSchema checks the raw config tree against a JSON Schema
// document.
func validateAgainstSchema(tree map[string]any, schemaFile string) error {
	schemaData, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", schemaFile, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
	if err != nil {
		return fmt.Errorf("invalid schema file %s: %w", schemaFile, err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(tree))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(details, "; "))
	}
	return nil
}

// convert transforms the untyped YAML tree into the typed configuration,
// verifying referenced query files exist relative to the config file's
// directory. Recorded paths stay as written so later matching works on
// repo-relative paths.
func convert(tree map[string]any, configDir string) (*model.Config, error) {
	version, err := stringValue(tree, "version")
	if err != nil {
		return nil, err
	}

	var queries []model.QuerySpec
	if raw, ok := tree["queries"]; ok && raw != nil {
		entries, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("queries must be a list, got %T", raw)
		}
		for i, entry := range entries {
			spec, err := convertQuery(entry, configDir)
			if err != nil {
				return nil, fmt.Errorf("queries[%d]: %w", i, err)
			}
			queries = append(queries, spec)
		}
	}

	cfg := model.NewConfig(version, queries)
	return &cfg, nil
}

func convertQuery(entry any, configDir string) (model.QuerySpec, error) {
	m, ok := entry.(map[string]any)
	if !ok {
		return model.QuerySpec{}, fmt.Errorf("query entry must be a mapping, got %T", entry)
	}

	file, err := stringValue(m, "file")
	if err != nil {
		return model.QuerySpec{}, err
	}
	if file == "" {
		return model.QuerySpec{}, fmt.Errorf("missing required key: file")
	}

	if err := checkQueryFile(file, configDir); err != nil {
		return model.QuerySpec{}, err
	}

	var outputs []model.OutputSpec
	if raw, ok := m["output"]; ok && raw != nil {
		entries, ok := raw.([]any)
		if !ok {
			return model.QuerySpec{}, fmt.Errorf("output must be a list, got %T", raw)
		}
		for i, entry := range entries {
			spec, err := convertOutput(entry, configDir)
			if err != nil {
				return model.QuerySpec{}, fmt.Errorf("output[%d]: %w", i, err)
			}
			outputs = append(outputs, spec)
		}
	}

	return model.NewQuerySpec(file, outputs)
}

func convertOutput(entry any, configDir string) (model.OutputSpec, error) {
	m, ok := entry.(map[string]any)
	if !ok {
		return model.OutputSpec{}, fmt.Errorf("output entry must be a mapping, got %T", entry)
	}

	formatStr, err := stringValue(m, "format")
	if err != nil {
		return model.OutputSpec{}, err
	}
	format, err := model.ParseOutputFormat(formatStr)
	if err != nil {
		return model.OutputSpec{}, err
	}

	outputFile, err := stringValue(m, "file")
	if err != nil {
		return model.OutputSpec{}, err
	}
	if outputFile != "" && format != model.FormatNone {
		checkDestination(outputFile, configDir)
	}

	compressionStr, err := stringValue(m, "compression")
	if err != nil {
		return model.OutputSpec{}, err
	}
	var compression model.CompressionType
	if compressionStr != "" {
		compression, err = model.ParseCompressionType(compressionStr)
		if err != nil {
			return model.OutputSpec{}, err
		}
	}

	filter, err := stringValue(m, "query")
	if err != nil {
		return model.OutputSpec{}, err
	}

	return model.NewOutputSpec(format, filter, outputFile, compression)
}

// checkQueryFile verifies that a referenced query file exists relative to
// the config file's directory. A missing file is a hard configuration
// error at load time.
func checkQueryFile(file, configDir string) error {
	abs := filepath.Join(configDir, file)
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return fmt.Errorf("query file does not exist: %s (resolved to %s)", file, abs)
	}
	return nil
}

// checkDestination emits non-fatal notices about the destination path:
// an existing file will be overwritten, a missing parent directory will
// be created at execution time.
func checkDestination(outputFile, configDir string) {
	abs := filepath.Join(configDir, outputFile)
	if _, err := os.Stat(abs); err == nil {
		logger.Warn("Output file exists and will be overwritten", zap.String("file", outputFile))
	}
	if dir := filepath.Dir(abs); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			logger.Info("Output directory does not exist and will be created", zap.String("dir", dir))
		}
	}
}

func stringValue(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return s, nil
}
