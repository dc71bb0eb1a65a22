// Package validator performs structural checks over a loaded query
// configuration, beyond what the schema and the typed model enforce.
package validator

import (
	"fmt"
	"strings"

	"github.com/christosgalano/kqlctl/internal/model"
)

// ValidationResult represents the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationWarning
	Hints    []string
	config   *model.Config
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
	Fix     string
}

// ValidationWarning represents a validation warning
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// Validator validates query configurations
type Validator struct {
	config *model.Config
}

// NewValidator creates a new validator
func NewValidator(cfg *model.Config) *Validator {
	return &Validator{config: cfg}
}

// Validate performs all validation checks
func (v *Validator) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
		Hints:    []string{},
		config:   v.config,
	}

	v.validateVersion(result)
	v.validateDuplicateQueries(result)
	v.validateDestinations(result)
	v.validateDestinationExtensions(result)
	v.validateOutputCoverage(result)

	result.Valid = len(result.Errors) == 0
	return result
}

// validateVersion checks the configuration version
func (v *Validator) validateVersion(result *ValidationResult) {
	if v.config.Version == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "version",
			Message: "Configuration version is required",
			Fix:     `Add version: "1.0" to the configuration`,
		})
	}
}

// validateDuplicateQueries checks for the same query file configured twice
func (v *Validator) validateDuplicateQueries(result *ValidationResult) {
	seen := make(map[string]bool)

	for _, q := range v.config.Queries {
		if seen[q.File] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "queries",
				Message: fmt.Sprintf("Duplicate query file entry '%s'", q.File),
				Fix:     "Merge the output specs into a single entry; only the first matching entry is used",
			})
		}
		seen[q.File] = true
	}
}

// validateDestinations checks for destination files shared across specs.
// Shared destinations overwrite each other silently within a run, and a
// future concurrent runner could not keep them isolated.
func (v *Validator) validateDestinations(result *ValidationResult) {
	destinations := make(map[string][]string) // destination -> query files

	for _, q := range v.config.Queries {
		for _, o := range q.Output {
			if o.File == "" {
				continue
			}
			destinations[o.File] = append(destinations[o.File], q.File)
		}
	}

	for dest, queries := range destinations {
		if len(queries) > 1 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   "output.file",
				Message: fmt.Sprintf("Destination '%s' is written by multiple specs: %s", dest, strings.Join(queries, ", ")),
				Hint:    "Later writes overwrite earlier ones; give each spec its own destination",
			})
		}
	}
}

// validateDestinationExtensions warns when a destination file does not
// carry the canonical extension for its output format
func (v *Validator) validateDestinationExtensions(result *ValidationResult) {
	for _, q := range v.config.Queries {
		for _, o := range q.Output {
			if o.File == "" {
				continue
			}
			ext := o.Format.Extension()
			if ext == "" || strings.HasSuffix(o.File, ext) {
				continue
			}
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   "output.file",
				Message: fmt.Sprintf("Destination '%s' does not match the %s extension for format %s", o.File, ext, o.Format),
				Hint:    fmt.Sprintf("Rename the destination to end in %s", ext),
			})
		}
	}
}

// validateOutputCoverage adds hints about entries falling back to the
// default output
func (v *Validator) validateOutputCoverage(result *ValidationResult) {
	if len(v.config.Queries) == 0 {
		result.Hints = append(result.Hints, "No queries configured: all .kql files under the target folder run with default JSON console output")
		return
	}

	for _, q := range v.config.Queries {
		if len(q.Output) == 0 {
			result.Hints = append(result.Hints, fmt.Sprintf("Query '%s' has no output specs: default JSON console output applies", q.File))
		}
	}
}

// Format returns a human-readable string representation of the validation result
func (r *ValidationResult) Format() string {
	var sb strings.Builder

	if r.Valid {
		sb.WriteString("✓ Configuration validation passed\n")
		sb.WriteString(fmt.Sprintf("  %d query entr%s total", len(r.config.Queries), pluralY(len(r.config.Queries))))

		if len(r.Warnings) > 0 || len(r.Hints) > 0 {
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(fmt.Sprintf("✗ Configuration validation failed with %d error(s)\n", len(r.Errors)))
	}

	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("\nERROR: %s\n", err.Message))
		if err.Field != "" {
			sb.WriteString(fmt.Sprintf("  Field: %s\n", err.Field))
		}
		if err.Fix != "" {
			sb.WriteString(fmt.Sprintf("  Fix: %s\n", err.Fix))
		}
	}

	for _, warn := range r.Warnings {
		sb.WriteString(fmt.Sprintf("\nWARNING: %s\n", warn.Message))
		if warn.Field != "" {
			sb.WriteString(fmt.Sprintf("  Field: %s\n", warn.Field))
		}
		if warn.Hint != "" {
			sb.WriteString(fmt.Sprintf("  Hint: %s\n", warn.Hint))
		}
	}

	if len(r.Hints) > 0 {
		sb.WriteString("\n")
		for _, hint := range r.Hints {
			sb.WriteString(fmt.Sprintf("💡 %s\n", hint))
		}
	}

	return sb.String()
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
