package config

import (
	"testing"

	"github.com/christosgalano/kqlctl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutputs(t *testing.T) {
	tableSpec := model.OutputSpec{Format: model.FormatTable}
	tsvSpec := model.OutputSpec{Format: model.FormatTSV, File: "out.tsv"}

	t.Run("no entries yields default", func(t *testing.T) {
		cfg := model.Config{Version: "1.0"}

		specs := ResolveOutputs(&cfg, "anything.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatJSON, specs[0].Format)
		assert.Empty(t, specs[0].File)
		assert.Empty(t, specs[0].Query)
		assert.Empty(t, specs[0].Compression)
	})

	t.Run("exact relative path match", func(t *testing.T) {
		cfg := model.Config{Queries: []model.QuerySpec{
			{File: "sub/query.kql", Output: []model.OutputSpec{tableSpec}},
		}}

		specs := ResolveOutputs(&cfg, "sub/query.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatTable, specs[0].Format)
	})

	t.Run("basename match against nested entry", func(t *testing.T) {
		cfg := model.Config{Queries: []model.QuerySpec{
			{File: "library/security/query.kql", Output: []model.OutputSpec{tsvSpec}},
		}}

		specs := ResolveOutputs(&cfg, "query.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatTSV, specs[0].Format)
	})

	t.Run("nested discovered file matches basename entry", func(t *testing.T) {
		cfg := model.Config{Queries: []model.QuerySpec{
			{File: "a/b/query.kql", Output: []model.OutputSpec{tableSpec}},
		}}

		specs := ResolveOutputs(&cfg, "b/query.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatTable, specs[0].Format)
	})

	t.Run("entry without outputs falls through to default", func(t *testing.T) {
		cfg := model.Config{Queries: []model.QuerySpec{
			{File: "query.kql"},
		}}

		specs := ResolveOutputs(&cfg, "query.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatJSON, specs[0].Format)
	})

	t.Run("first matching entry with outputs wins", func(t *testing.T) {
		cfg := model.Config{Queries: []model.QuerySpec{
			{File: "query.kql"},
			{File: "query.kql", Output: []model.OutputSpec{tableSpec}},
			{File: "query.kql", Output: []model.OutputSpec{tsvSpec}},
		}}

		specs := ResolveOutputs(&cfg, "query.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatTable, specs[0].Format)
	})

	t.Run("unrelated entries never match", func(t *testing.T) {
		cfg := model.Config{Queries: []model.QuerySpec{
			{File: "other.kql", Output: []model.OutputSpec{tableSpec}},
		}}

		specs := ResolveOutputs(&cfg, "query.kql")
		require.Len(t, specs, 1)
		assert.Equal(t, model.FormatJSON, specs[0].Format)
	})
}
