package model

import (
	"fmt"
	"strings"
	"unicode"
)

// QueryFileExtension is the required extension for KQL query files.
const QueryFileExtension = ".kql"

// OutputFormat represents the output format requested from the query engine
type OutputFormat string

const (
	// FormatNone produces no output; the query is intentionally skipped
	FormatNone OutputFormat = "none"
	// FormatJSON produces JSON output
	FormatJSON OutputFormat = "json"
	// FormatJSONC produces colorized JSON output
	FormatJSONC OutputFormat = "jsonc"
	// FormatTable produces tabular output
	FormatTable OutputFormat = "table"
	// FormatTSV produces tab-separated values
	FormatTSV OutputFormat = "tsv"
	// FormatYAML produces YAML output
	FormatYAML OutputFormat = "yaml"
	// FormatYAMLC produces colorized YAML output
	FormatYAMLC OutputFormat = "yamlc"
)

// ParseOutputFormat converts a configuration string into an OutputFormat.
// Unrecognized values are rejected rather than defaulted.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatNone, FormatJSON, FormatJSONC, FormatTable, FormatTSV, FormatYAML, FormatYAMLC:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format: %q", s)
	}
}

// Extension returns the canonical file extension for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJSON, FormatJSONC:
		return ".json"
	case FormatTable:
		return ".txt"
	case FormatTSV:
		return ".tsv"
	case FormatYAML, FormatYAMLC:
		return ".yaml"
	default:
		return ""
	}
}

// String returns the configuration spelling of the format.
func (f OutputFormat) String() string {
	return string(f)
}

// CompressionType represents the compression applied to file-destined output
type CompressionType string

const (
	// CompressionGzip compresses the output file to <path>.gz
	CompressionGzip CompressionType = "gzip"
	// CompressionZip archives the output file into <base>.zip
	CompressionZip CompressionType = "zip"
)

// ParseCompressionType converts a configuration string into a CompressionType.
func ParseCompressionType(s string) (CompressionType, error) {
	switch c := CompressionType(s); c {
	case CompressionGzip, CompressionZip:
		return c, nil
	default:
		return "", fmt.Errorf("invalid compression type: %q", s)
	}
}

// String returns the configuration spelling of the compression type.
func (c CompressionType) String() string {
	return string(c)
}

// OutputSpec describes how to format, filter, and deliver one query
// result. An empty File means the result is written to the console.
type OutputSpec struct {
	Format      OutputFormat
	Query       string // JMESPath filter expression, forwarded opaquely
	File        string
	Compression CompressionType
}

// NewOutputSpec validates and constructs an OutputSpec.
func NewOutputSpec(format OutputFormat, query, file string, compression CompressionType) (OutputSpec, error) {
	if containsWhitespace(file) {
		return OutputSpec{}, fmt.Errorf("output file path should not contain whitespace: %q, use underscores or dashes instead", file)
	}
	if compression != "" && file == "" {
		return OutputSpec{}, fmt.Errorf("compression %q requires an output file, console output cannot be compressed", compression)
	}
	return OutputSpec{
		Format:      format,
		Query:       query,
		File:        file,
		Compression: compression,
	}, nil
}

// QuerySpec binds one query file to its output specifications.
// An empty Output list means the default output applies.
type QuerySpec struct {
	File   string
	Output []OutputSpec
}

// NewQuerySpec validates and constructs a QuerySpec. The file path must
// carry the .kql extension and contain no whitespace.
func NewQuerySpec(file string, output []OutputSpec) (QuerySpec, error) {
	if !strings.HasSuffix(file, QueryFileExtension) {
		return QuerySpec{}, fmt.Errorf("query file must end with %s: %s", QueryFileExtension, file)
	}
	if containsWhitespace(file) {
		return QuerySpec{}, fmt.Errorf("query file path should not contain whitespace: %q, use underscores or dashes instead", file)
	}
	return QuerySpec{File: file, Output: output}, nil
}

// Config is the root configuration for a query run. Immutable once
// loaded.
//
// An empty Queries list means every query file discovered under the
// target folder is executed with the default output; a non-empty list
// restricts the run to exactly those files.
type Config struct {
	Version string
	Queries []QuerySpec
}

// DefaultVersion is assumed when the configuration omits a version.
const DefaultVersion = "1.0"

// NewConfig constructs a Config, applying the default version.
func NewConfig(version string, queries []QuerySpec) Config {
	if version == "" {
		version = DefaultVersion
	}
	return Config{Version: version, Queries: queries}
}

func containsWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}
