package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "./data/", DataDir)
	assert.Equal(t, "./reports/", OutputDir)
	assert.Equal(t, "./card_data.json", SnapshotFile)
	assert.True(t, OverwriteFiles)
	assert.False(t, FetchImages)
}

func TestInitConfigReadsViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("datadir", "/tmp/cards")
	viper.Set("fetchimages", true)

	InitConfig()

	assert.Equal(t, "/tmp/cards", DataDir)
	assert.True(t, FetchImages)
}

func TestSetters(t *testing.T) {
	origOverwrite := OverwriteFiles
	origFetch := FetchImages
	origUpdate := UpdateImages
	t.Cleanup(func() {
		OverwriteFiles = origOverwrite
		FetchImages = origFetch
		UpdateImages = origUpdate
	})

	SetOverwriteFiles(false)
	assert.False(t, OverwriteFiles)

	SetFetchImages(true)
	assert.True(t, FetchImages)

	SetUpdateImages(true)
	assert.True(t, UpdateImages)
}
