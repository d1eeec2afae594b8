package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.GraspAlpha)
	assert.Equal(t, 50, cfg.GAPopulationSize)
	assert.Equal(t, int64(1), cfg.Seed)
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	os.Setenv("CBCTT_GRASP_ALPHA", "0.7")
	defer os.Unsetenv("CBCTT_GRASP_ALPHA")

	cfg, err := Load("", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.GraspAlpha)
}

func TestLoadChangedFlagOverridesEverything(t *testing.T) {
	os.Setenv("CBCTT_GRASP_ALPHA", "0.7")
	defer os.Unsetenv("CBCTT_GRASP_ALPHA")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("alpha", 0.3, "")
	require.NoError(t, fs.Set("alpha", "0.9"))

	cfg, err := Load("", fs, FlagBindings{"grasp.alpha": "alpha"})
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.GraspAlpha)
}
