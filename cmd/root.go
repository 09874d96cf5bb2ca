package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/binder/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the binder application
type CLI struct {
	// Global flags
	DataDir      string `help:"Directory containing the saved HTML source files"`
	OutputDir    string `help:"Directory report pages are written to"`
	Snapshot     string `help:"Path of the extracted card data snapshot"`
	FetchImages  bool   `help:"Download card image thumbnails for report previews"`
	UpdateImages bool   `help:"Re-download card images even if they already exist"`
	Overwrite    bool   `help:"Overwrite existing report files" default:"true" negatable:""`

	// Database flags
	Database   bool   `help:"Export the unified card table to SQLite" default:"true"`
	DatabaseDB string `help:"Path to SQLite database file" default:"./binder.db"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Extract card data when sources changed, reconcile and render all reports"`
	Extract  ExtractCmd  `cmd:"" help:"Force re-extraction of card data from the saved HTML files"`
	Report   ReportCmd   `cmd:"" help:"Regenerate reports from the existing snapshot without extraction"`
	Info     InfoCmd     `cmd:"" help:"Show summary information about the current snapshot"`
}

// GenerateCmd runs the full pipeline: extraction when source files
// changed, reconciliation, and report rendering.
type GenerateCmd struct {
	Force bool `short:"f" help:"Re-extract even when no source file changed"`
}

// ExtractCmd re-extracts the snapshot and stops there.
type ExtractCmd struct{}

// ReportCmd renders reports from the stored snapshot without touching
// the source HTML files.
type ReportCmd struct {
	ForceAll bool `help:"Regenerate every set page, ignoring change detection"`
}

// InfoCmd prints snapshot statistics.
type InfoCmd struct{}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("binder"),
		kong.Description("Tracks trading card ownership across catalog and marketplace HTML exports."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("database.enabled", true)
	viper.SetDefault("database.dbfile", "./binder.db")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

// updateGlobalConfig applies parsed CLI flags over the viper-backed
// defaults. Path flags only override when given.
func updateGlobalConfig(cli *CLI) {
	if cli.DataDir != "" {
		config.DataDir = cli.DataDir
	}
	if cli.OutputDir != "" {
		config.OutputDir = cli.OutputDir
	}
	if cli.Snapshot != "" {
		config.SnapshotFile = cli.Snapshot
	}
	if cli.FetchImages {
		config.SetFetchImages(true)
	}
	config.SetUpdateImages(cli.UpdateImages)
	config.SetOverwriteFiles(cli.Overwrite)

	viper.Set("database.enabled", cli.Database)
	viper.Set("database.dbfile", cli.DatabaseDB)
}

func (g *GenerateCmd) Run() error {
	return runPipeline(g.Force, false, false)
}

func (e *ExtractCmd) Run() error {
	return runExtraction()
}

func (r *ReportCmd) Run() error {
	return runPipeline(false, true, r.ForceAll)
}

func (i *InfoCmd) Run() error {
	return showInfo()
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("BINDER_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
