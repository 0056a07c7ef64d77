package checkpoint_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/checkpoint"
	"github.com/augur-ml/augur/internal/forecast"
	"github.com/augur-ml/augur/internal/series"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() adBackend {
	return autodiff.New(cpu.New())
}

func testConfig() forecast.Config {
	cfg := forecast.Defaults()
	cfg.WindowSize = 4
	cfg.HiddenSize = 8
	cfg.Epochs = 5
	cfg.TestSize = 4
	return cfg
}

func savedModel(t *testing.T) (string, *forecast.Model[adBackend], *series.Scaler) {
	t.Helper()

	backend := newBackend()
	model, err := forecast.NewModel(testConfig(), backend)
	require.NoError(t, err)

	scaler := &series.Scaler{Mean: 7350.25, Std: 612.5}

	path := filepath.Join(t.TempDir(), "model.augur")
	require.NoError(t, checkpoint.Save(path, model, scaler))
	return path, model, scaler
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path, model, scaler := savedModel(t)

	loaded, loadedScaler, err := checkpoint.Load(path, newBackend())
	require.NoError(t, err)

	assert.Equal(t, *scaler, *loadedScaler, "scaler stats survive the round trip")
	assert.Equal(t, model.Config(), loaded.Config())

	want := model.StateDict()
	got := loaded.StateDict()
	require.Len(t, got, len(want))
	for name, raw := range want {
		require.Contains(t, got, name)
		assert.Equal(t, raw.AsFloat32(), got[name].AsFloat32(), "parameter %s changed across save/load", name)
		assert.Equal(t, raw.Shape(), got[name].Shape())
	}
}

func TestSave_TensorTableIsSorted(t *testing.T) {
	path, _, _ := savedModel(t)

	header, err := checkpoint.ReadHeader(path)
	require.NoError(t, err)

	names := make([]string, len(header.Tensors))
	for i, meta := range header.Tensors {
		names[i] = meta.Name
	}
	assert.True(t, sort.StringsAreSorted(names), "tensor table should be name-ordered: %v", names)
}

func TestReadHeader(t *testing.T) {
	path, model, scaler := savedModel(t)

	header, err := checkpoint.ReadHeader(path)
	require.NoError(t, err)

	assert.Equal(t, checkpoint.FormatVersion, header.FormatVersion)
	assert.Equal(t, checkpoint.ToolkitVersion, header.AugurVersion)
	assert.Equal(t, model.Config(), header.Config)
	assert.Equal(t, *scaler, header.Scaler)
	assert.False(t, header.CreatedAt.IsZero())
	assert.Len(t, header.Tensors, 6)
}

func TestLoad_CorruptedDataFailsChecksum(t *testing.T) {
	path, _, _ := savedModel(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, _, err = checkpoint.Load(path, newBackend())
	assert.ErrorIs(t, err, checkpoint.ErrChecksumMismatch)
}

func TestLoad_CorruptedHeaderFailsChecksum(t *testing.T) {
	path, _, _ := savedModel(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Rewrite the toolkit version inside the JSON header: still valid
	// JSON, same length, different bytes.
	tampered := bytes.Replace(raw, []byte(`"augur_version":"`+checkpoint.ToolkitVersion+`"`),
		[]byte(`"augur_version":"9.9.9"`), 1)
	require.NotEqual(t, raw, tampered, "tampering should have changed the header")
	require.NoError(t, os.WriteFile(path, tampered, 0o644))

	_, _, err = checkpoint.Load(path, newBackend())
	assert.ErrorIs(t, err, checkpoint.ErrChecksumMismatch)
}

func TestLoad_WrongMagic(t *testing.T) {
	path, _, _ := savedModel(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	copy(raw[0:4], "NOPE")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, _, err = checkpoint.Load(path, newBackend())
	assert.ErrorIs(t, err, checkpoint.ErrInvalidMagic)
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	path, _, _ := savedModel(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(raw[4:8], 99)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, _, err = checkpoint.Load(path, newBackend())
	assert.ErrorIs(t, err, checkpoint.ErrUnsupportedVersion)
}

func TestLoad_TruncatedFile(t *testing.T) {
	path, _, _ := savedModel(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:len(raw)/2], 0o644))

	_, _, err = checkpoint.Load(path, newBackend())
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := checkpoint.Load(filepath.Join(t.TempDir(), "nope.augur"), newBackend())
	assert.Error(t, err)
}

func TestLoad_PredictsLikeSaved(t *testing.T) {
	path, model, scaler := savedModel(t)

	loaded, loadedScaler, err := checkpoint.Load(path, newBackend())
	require.NoError(t, err)

	history := []float64{7100, 7300, 7000, 7450, 7200, 7600}
	want, err := forecast.Forecast(model, scaler, history, 3)
	require.NoError(t, err)
	got, err := forecast.Forecast(loaded, loadedScaler, history, 3)
	require.NoError(t, err)

	assert.Equal(t, want, got, "loaded model should forecast identically")
}
