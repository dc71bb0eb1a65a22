package validator

import (
	"strings"
	"testing"

	"github.com/christosgalano/kqlctl/internal/model"
)

func TestValidateCleanConfig(t *testing.T) {
	cfg := model.NewConfig("1.0", []model.QuerySpec{
		{File: "a.kql", Output: []model.OutputSpec{{Format: model.FormatJSON, File: "a.json"}}},
		{File: "b.kql", Output: []model.OutputSpec{{Format: model.FormatJSON, File: "b.json"}}},
	})

	result := NewValidator(&cfg).Validate()
	if !result.Valid {
		t.Fatalf("Validate() reported invalid: %+v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", result.Warnings)
	}
}

func TestValidateMissingVersion(t *testing.T) {
	cfg := model.Config{}

	result := NewValidator(&cfg).Validate()
	if result.Valid {
		t.Fatal("Validate() should fail without a version")
	}
	if len(result.Errors) != 1 || result.Errors[0].Field != "version" {
		t.Errorf("expected a version error, got %+v", result.Errors)
	}
}

func TestValidateDuplicateQueries(t *testing.T) {
	cfg := model.NewConfig("1.0", []model.QuerySpec{
		{File: "a.kql"},
		{File: "a.kql"},
	})

	result := NewValidator(&cfg).Validate()
	if result.Valid {
		t.Fatal("Validate() should fail on duplicate query entries")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e.Message, "a.kql") {
			found = true
		}
	}
	if !found {
		t.Errorf("duplicate error should name the file, got %+v", result.Errors)
	}
}

func TestValidateSharedDestination(t *testing.T) {
	cfg := model.NewConfig("1.0", []model.QuerySpec{
		{File: "a.kql", Output: []model.OutputSpec{{Format: model.FormatJSON, File: "shared.json"}}},
		{File: "b.kql", Output: []model.OutputSpec{{Format: model.FormatJSON, File: "shared.json"}}},
	})

	result := NewValidator(&cfg).Validate()
	if !result.Valid {
		t.Fatalf("shared destinations are a warning, not an error: %+v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %+v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0].Message, "shared.json") {
		t.Errorf("warning should name the destination, got %+v", result.Warnings[0])
	}
}

func TestValidateDestinationExtensions(t *testing.T) {
	tests := []struct {
		name         string
		spec         model.OutputSpec
		wantWarnings int
	}{
		{
			name:         "matching extension",
			spec:         model.OutputSpec{Format: model.FormatJSON, File: "out.json"},
			wantWarnings: 0,
		},
		{
			name:         "mismatched extension",
			spec:         model.OutputSpec{Format: model.FormatTSV, File: "out.json"},
			wantWarnings: 1,
		},
		{
			name:         "table format wants txt",
			spec:         model.OutputSpec{Format: model.FormatTable, File: "out.dat"},
			wantWarnings: 1,
		},
		{
			name:         "console output never warns",
			spec:         model.OutputSpec{Format: model.FormatTSV},
			wantWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.NewConfig("1.0", []model.QuerySpec{
				{File: "a.kql", Output: []model.OutputSpec{tt.spec}},
			})

			result := NewValidator(&cfg).Validate()
			if !result.Valid {
				t.Fatalf("extension mismatches are warnings, not errors: %+v", result.Errors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %+v", len(result.Warnings), tt.wantWarnings, result.Warnings)
			}
			if tt.wantWarnings > 0 && !strings.Contains(result.Warnings[0].Message, tt.spec.File) {
				t.Errorf("warning should name the destination, got %+v", result.Warnings[0])
			}
		})
	}
}

func TestValidateDefaultOutputHints(t *testing.T) {
	tests := []struct {
		name    string
		queries []model.QuerySpec
		want    string
	}{
		{
			name: "no queries configured",
			want: "No queries configured",
		},
		{
			name:    "entry without outputs",
			queries: []model.QuerySpec{{File: "a.kql"}},
			want:    "a.kql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.NewConfig("1.0", tt.queries)
			result := NewValidator(&cfg).Validate()
			if !result.Valid {
				t.Fatalf("Validate() reported invalid: %+v", result.Errors)
			}
			found := false
			for _, h := range result.Hints {
				if strings.Contains(h, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a hint containing %q, got %v", tt.want, result.Hints)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cfg := model.NewConfig("1.0", []model.QuerySpec{
		{File: "a.kql"},
		{File: "a.kql"},
	})

	out := NewValidator(&cfg).Validate().Format()
	if !strings.Contains(out, "validation failed") {
		t.Errorf("Format() should report failure, got: %s", out)
	}
	if !strings.Contains(out, "ERROR:") {
		t.Errorf("Format() should list errors, got: %s", out)
	}
}
