package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/imputego/fill"
)

func TestParseVisitSequence(t *testing.T) {
	testCases := []struct {
		in   string
		want VisitSequence
	}{
		{"monotone", VisitMonotone},
		{"roman", VisitRoman},
		{"arabic", VisitArabic},
		{"revmonotone", VisitRevMonotone},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseVisitSequence(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, got.String())
			assert.True(t, got.Valid())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseVisitSequence("sideways")

		var ice *ErrInvalidConfig
		require.ErrorAs(t, err, &ice)
		assert.Equal(t, "visit_sequence", ice.Param)
	})
}

func TestParseImputeType(t *testing.T) {
	got, err := ParseImputeType("col")
	require.NoError(t, err)
	assert.Equal(t, ImputePosterior, got)

	got, err = ParseImputeType("pmm")
	require.NoError(t, err)
	assert.Equal(t, ImputePMM, got)

	_, err = ParseImputeType("norm")
	var ice *ErrInvalidConfig
	require.ErrorAs(t, err, &ice)
}

func TestConfigValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, VisitMonotone, cfg.VisitSequence)
		assert.Equal(t, ImputePosterior, cfg.ImputeType)
		assert.Equal(t, fill.MethodMean, cfg.FillMethod)
		assert.Equal(t, 100, cfg.NImputations)
		assert.Equal(t, 10, cfg.NBurnIn)
		assert.Equal(t, 5, cfg.NPMMNeighbors)
		assert.Equal(t, 110, cfg.rounds())
	})

	testCases := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"BadVisitSequence", func(c *Config) { c.VisitSequence = VisitSequence(9) }, "visit_sequence"},
		{"BadImputeType", func(c *Config) { c.ImputeType = ImputeType(9) }, "impute_type"},
		{"BadFillMethod", func(c *Config) { c.FillMethod = fill.Method(9) }, "fill_method"},
		{"ZeroImputations", func(c *Config) { c.NImputations = 0 }, "n_imputations"},
		{"NegativeBurnIn", func(c *Config) { c.NBurnIn = -1 }, "n_burn_in"},
		{"ZeroPMMNeighbors", func(c *Config) { c.NPMMNeighbors = 0 }, "n_pmm_neighbors"},
		{"NegativeNearestColumns", func(c *Config) { c.NNearestColumns = -1 }, "n_nearest_columns"},
		{"InvertedBounds", func(c *Config) {
			c.MinValue = f64ptr(5)
			c.MaxValue = f64ptr(1)
		}, "min_value/max_value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			var ice *ErrInvalidConfig
			require.ErrorAs(t, cfg.Validate(), &ice)
			assert.Equal(t, tc.param, ice.Param)
		})
	}
}

func TestConfigJSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VisitSequence = VisitArabic
	cfg.ImputeType = ImputePMM
	cfg.FillMethod = fill.MethodMedian
	cfg.MinValue = f64ptr(-1)
	cfg.Seed = u64ptr(7)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"visit_sequence":"arabic"`)
	assert.Contains(t, string(data), `"impute_type":"pmm"`)

	var got Config
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, cfg, got)
}

func TestConfigBounds(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.MinValue == nil)
	assert.NotEqual(t, cfg.minBound(), cfg.minBound(), "nil bound must map to NaN")

	cfg.MinValue = f64ptr(-2)
	cfg.MaxValue = f64ptr(2)
	assert.Equal(t, -2.0, cfg.minBound())
	assert.Equal(t, 2.0, cfg.maxBound())
}
