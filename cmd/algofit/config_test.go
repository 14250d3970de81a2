package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := `
input: sine:220
gt: gain:0.5
adjustable: gain:1.0
lossfunction: l1
learningrate: 0.05
iterations: 250
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := loadRunConfig(path)
	require.NoError(t, err)

	require.Equal(t, "sine:220", cfg.Input)
	require.Equal(t, "gain:0.5", cfg.GroundTruth)
	require.Equal(t, "gain:1.0", cfg.Adjustable)
	require.Equal(t, "l1", cfg.LossFunction)
	require.Equal(t, 0.05, cfg.LearningRate)
	require.Equal(t, 250, cfg.Iterations)

	// Untouched fields keep their defaults.
	def := defaultRunConfig()
	require.Equal(t, def.Sensitivity, cfg.Sensitivity)
	require.Equal(t, def.StreakLimit, cfg.StreakLimit)
	require.Equal(t, def.BlockSize, cfg.BlockSize)
	require.Equal(t, def.CSVPath, cfg.CSVPath)
}

func TestLoadRunConfigMissingFile(t *testing.T) {
	_, err := loadRunConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("learningrate: 0.05\niterations: 250\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("learningrate", "0.2"))

	flags := defaultRunConfig()
	flags.LearningRate = 0.2
	cfg, err := resolveConfig(cmd, flags, path)
	require.NoError(t, err)

	require.Equal(t, 0.2, cfg.LearningRate, "explicit flag wins")
	require.Equal(t, 250, cfg.Iterations, "file value kept where no flag was set")
}

func TestRunFitRequiresSpecs(t *testing.T) {
	require.Error(t, runFit(defaultRunConfig()))
}
