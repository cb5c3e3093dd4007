package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boat:\n  ship_type: tanker\n"), 0o600))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "synthetic", cfg.Boat.BoatType)
	assert.Equal(t, "tanker", cfg.Boat.ShipType)
	assert.InDelta(t, 6.0, cfg.Boat.BoatSpeed, 1e-12)
	assert.InDelta(t, 1.0, cfg.Boat.ConstantFuelRate, 1e-12)
	assert.Equal(t, 6060, cfg.API.Port)
}

func TestReadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boat:\n  boat_speed: 7.5\n"), 0o600))
	t.Setenv("WRT_BOAT_CONSTANT_FUEL_RATE", "2.25")

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, cfg.Boat.BoatSpeed, 1e-12)
	assert.InDelta(t, 2.25, cfg.Boat.ConstantFuelRate, 1e-12)
}

func TestReadConfigRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "zero boat speed", yaml: "boat:\n  boat_speed: 0\n"},
		{name: "unknown boat type", yaml: "boat:\n  boat_type: sailing\n"},
		{name: "negative fuel rate", yaml: "boat:\n  constant_fuel_rate: -1\n"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := ReadConfig(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadParamInput)
		})
	}
}

func TestWrapErrorfMatchesCauseAndCode(t *testing.T) {
	err := WrapErrorf(ErrDivisionByZero, ErrBadParamInput, "speed is %v", 0.0)

	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.ErrorIs(t, err, ErrBadParamInput)
	assert.False(t, IsWarning(err))
	assert.True(t, IsWarning(WrapErrorf(ErrNumericOverflow, nil, "clamped")))
}
