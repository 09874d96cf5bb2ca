package testutil

import (
	"testing"

	"github.com/lepinkainen/binder/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	DataDir        string
	OutputDir      string
	SnapshotFile   string
	OverwriteFiles bool
	FetchImages    bool
	UpdateImages   bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		DataDir:        config.DataDir,
		OutputDir:      config.OutputDir,
		SnapshotFile:   config.SnapshotFile,
		OverwriteFiles: config.OverwriteFiles,
		FetchImages:    config.FetchImages,
		UpdateImages:   config.UpdateImages,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.DataDir = state.DataDir
	config.OutputDir = state.OutputDir
	config.SnapshotFile = state.SnapshotFile
	config.OverwriteFiles = state.OverwriteFiles
	config.FetchImages = state.FetchImages
	config.UpdateImages = state.UpdateImages
}

// SetTestConfig points the config globals at a test environment and
// schedules restoration when the test completes.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.DataDir = env.Path("data")
	config.OutputDir = env.Path("reports")
	config.SnapshotFile = env.Path("card_data.json")
	config.OverwriteFiles = true
	config.FetchImages = false
	config.UpdateImages = false

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
