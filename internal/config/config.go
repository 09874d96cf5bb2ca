package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// DataDir is the directory containing the saved HTML source files
	DataDir string
	// OutputDir is the directory report pages are written to
	OutputDir string
	// SnapshotFile is the path of the extracted-data JSON snapshot
	SnapshotFile string
	// OverwriteFiles controls whether existing report files should be overwritten
	OverwriteFiles bool
	// FetchImages enables the best-effort card image download pass
	FetchImages bool
	// UpdateImages forces re-downloading images that already exist locally
	UpdateImages bool
)

// InitConfig initializes the global configuration
func InitConfig() {
	viper.SetDefault("datadir", "./data/")
	viper.SetDefault("outputdir", "./reports/")
	viper.SetDefault("snapshotfile", "./card_data.json")
	viper.SetDefault("overwritefiles", true)
	viper.SetDefault("fetchimages", false)

	DataDir = viper.GetString("datadir")
	OutputDir = viper.GetString("outputdir")
	SnapshotFile = viper.GetString("snapshotfile")
	OverwriteFiles = viper.GetBool("overwritefiles")
	FetchImages = viper.GetBool("fetchimages")
	UpdateImages = viper.GetBool("updateimages")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetFetchImages sets the FetchImages flag
func SetFetchImages(fetch bool) {
	FetchImages = fetch
}

// SetUpdateImages sets the UpdateImages flag
func SetUpdateImages(update bool) {
	UpdateImages = update
}
