package imputego

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/imputego/engine"
	"github.com/hupe1980/imputego/fill"
)

func TestTranslateError(t *testing.T) {
	testCases := []struct {
		name string
		in   error
		want error
	}{
		{"InvalidConfig", &engine.ErrInvalidConfig{Param: "n_imputations", Value: "0"}, ErrConfiguration},
		{"UnknownFillMethod", &fill.ErrUnknownMethod{Value: "mode"}, ErrConfiguration},
		{"DimensionMismatch", &engine.ErrDimensionMismatch{Expected: 3, Actual: 2}, ErrDimension},
		{"NoStoredModels", engine.ErrNoStoredModels, ErrState},
		{"ModelNotFitted", engine.ErrModelNotFitted, ErrState},
		{"NotTabular", fill.ErrNotTabular, ErrInput},
		{"AllMissingRow", &fill.ErrAllMissingRow{Row: 1}, ErrInput},
		{"AllMissingColumn", &fill.ErrAllMissingColumn{Column: 0}, ErrInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.in)
			assert.ErrorIs(t, got, tc.want)
			assert.ErrorIs(t, got, tc.in)
		})
	}

	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("Passthrough", func(t *testing.T) {
		plain := errors.New("model blew up")
		assert.Equal(t, plain, translateError(plain))
	})

	t.Run("UnderlyingReachable", func(t *testing.T) {
		got := translateError(&engine.ErrDimensionMismatch{Expected: 3, Actual: 2})

		var dm *engine.ErrDimensionMismatch
		require.ErrorAs(t, got, &dm)
		assert.Equal(t, 3, dm.Expected)
	})
}
