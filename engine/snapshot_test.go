package engine

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/imputego/codec"
	"github.com/hupe1980/imputego/model"
)

func retainedState(t *testing.T) *State {
	t.Helper()

	cfg := seededConfig(21)
	cfg.KeepModels = true
	e, err := New(cfg, meanFactory)
	require.NoError(t, err)

	res, err := e.Run(context.Background(), testData())
	require.NoError(t, err)
	require.NotNil(t, res.State)
	return res.State
}

func TestSnapshotRoundTrip(t *testing.T) {
	st := retainedState(t)

	compressions := []Compression{CompressionNone, CompressionZstd, CompressionLZ4}
	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, SaveState(&buf, st, codec.JSON{}, comp))

			got, err := LoadState(&buf)
			require.NoError(t, err)

			assert.Equal(t, st.Config, got.Config)
			assert.Equal(t, st.Cols, got.Cols)
			assert.Equal(t, st.VisitOrder, got.VisitOrder)
			assert.Equal(t, st.InitValues, got.InitValues)
			require.Equal(t, st.Models.Rounds(), got.Models.Rounds())

			for m := range st.Models {
				for c := range st.Models[m] {
					want, ok := st.Models[m][c].(*meanModel)
					require.True(t, ok)
					have, ok := got.Models[m][c].(*meanModel)
					require.True(t, ok, "slot (%d,%d) lost its concrete type", m, c)
					assert.Equal(t, want.Mean, have.Mean)
					assert.Equal(t, want.Variance, have.Variance)
				}
			}
		})
	}
}

func TestSnapshotGobManifest(t *testing.T) {
	st := retainedState(t)

	var buf bytes.Buffer
	require.NoError(t, SaveState(&buf, st, codec.Gob{}, CompressionNone))

	got, err := LoadState(&buf)
	require.NoError(t, err)
	assert.Equal(t, st.VisitOrder, got.VisitOrder)
}

func TestSnapshotReplayAfterLoad(t *testing.T) {
	st := retainedState(t)

	var buf bytes.Buffer
	require.NoError(t, SaveState(&buf, st, nil, CompressionZstd))

	loaded, err := LoadState(&buf)
	require.NoError(t, err)

	before, err := NewRowCompleter(st)
	require.NoError(t, err)
	after, err := NewRowCompleter(loaded)
	require.NoError(t, err)

	row := []float64{2.5, math.NaN(), 9.0}
	a, err := before.Complete(context.Background(), row, 77)
	require.NoError(t, err)
	b, err := after.Complete(context.Background(), row, 77)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSaveStateErrors(t *testing.T) {
	st := retainedState(t)

	t.Run("NoModels", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, SaveState(&buf, nil, nil, CompressionNone), ErrNoStoredModels)
		assert.ErrorIs(t, SaveState(&buf, &State{}, nil, CompressionNone), ErrNoStoredModels)
	})

	t.Run("BadCompression", func(t *testing.T) {
		var buf bytes.Buffer
		err := SaveState(&buf, st, nil, Compression(9))

		var ice *ErrInvalidConfig
		require.ErrorAs(t, err, &ice)
		assert.Equal(t, "compression", ice.Param)
	})
}

func TestLoadStateErrors(t *testing.T) {
	st := retainedState(t)

	valid := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, SaveState(&buf, st, nil, CompressionNone))
		return buf.Bytes()
	}

	t.Run("Truncated", func(t *testing.T) {
		_, err := LoadState(bytes.NewReader([]byte{'I', 'M'}))
		assert.Error(t, err)
	})

	t.Run("BadMagic", func(t *testing.T) {
		data := valid()
		data[0] = 'X'
		_, err := LoadState(bytes.NewReader(data))
		assert.ErrorContains(t, err, "not an imputation snapshot")
	})

	t.Run("BadVersion", func(t *testing.T) {
		data := valid()
		data[4] = 0xFF
		_, err := LoadState(bytes.NewReader(data))
		assert.ErrorContains(t, err, "unsupported snapshot version")
	})

	t.Run("BadCompressionByte", func(t *testing.T) {
		data := valid()
		data[6] = 0xFF
		_, err := LoadState(bytes.NewReader(data))
		assert.ErrorContains(t, err, "unsupported snapshot compression")
	})

	t.Run("TamperedConfig", func(t *testing.T) {
		broken := *st
		broken.Config.NImputations = 0

		var buf bytes.Buffer
		require.NoError(t, SaveState(&buf, &broken, nil, CompressionNone))

		_, err := LoadState(&buf)
		var ice *ErrInvalidConfig
		require.ErrorAs(t, err, &ice)
		assert.Equal(t, "n_imputations", ice.Param)
	})

	t.Run("HugeSectionLength", func(t *testing.T) {
		// header (8) + codec name "json" (4), then the first section's
		// u32 length prefix
		data := valid()
		binary.LittleEndian.PutUint32(data[12:16], 0xFFFFFFFF)

		_, err := LoadState(bytes.NewReader(data[:16]))
		assert.ErrorContains(t, err, "section length")
	})

	t.Run("TruncatedBody", func(t *testing.T) {
		data := valid()
		_, err := LoadState(bytes.NewReader(data[:len(data)-10]))
		assert.Error(t, err)
	})
}

var _ model.ColumnModel = (*meanModel)(nil)
var _ model.ColumnModel = (*constModel)(nil)
