package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mchmarny/pawpair/pkg/config"
	"github.com/mchmarny/pawpair/pkg/data"
	"github.com/mchmarny/pawpair/pkg/lexicon"
	"github.com/mchmarny/pawpair/pkg/logging"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "pawpair"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"

	debugFlagName  = "debug"
	dbFlagName     = "db"
	configFlagName = "config"
	formatFlagName = "format"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	DBPath    string
	ConfigDir string
	Debug     bool
	Format    string
	DB        *sql.DB
	Config    *config.Config
	Lexicon   lexicon.Provider
}

func getConfig(cmd *urfave.Command) *appConfig {
	return cmd.Root().Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                      appName,
		Version:                   fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion:     true,
		HideHelpCommand:           true,
		DisableSliceFlagSeparator: true,
		Usage:                     "Score how well two dogs would get along",
		Metadata:                  map[string]any{},
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  debugFlagName,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&urfave.StringFlag{
				Name:  dbFlagName,
				Usage: "Path to the Sqlite database file (optional, defaults to $HOME/.pawpair/data.db)",
			},
			&urfave.StringFlag{
				Name:  configFlagName,
				Usage: "Directory holding config.yaml (optional, defaults to $HOME/.pawpair)",
			},
			&urfave.StringFlag{
				Name:  formatFlagName,
				Usage: "Output format [json, yaml]",
				Value: formatJSON,
			},
		},
		Commands: []*urfave.Command{
			newImportCmd(),
			newDogsCmd(),
			newCompareCmd(),
			newMatchCmd(),
			newScoreCmd(),
			newRankCmd(),
			newSentimentCmd(),
			newResetCmd(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			if cmd.Bool(debugFlagName) {
				initLogging(true)
			}

			format := formatJSON
			if f := cmd.String(formatFlagName); f == formatYAML || f == "yml" {
				format = formatYAML
			}

			confDir := cmd.String(configFlagName)
			if confDir == "" {
				confDir = getHomeDir()
			}
			conf, err := config.ReadOrCreate(confDir)
			if err != nil {
				return ctx, fmt.Errorf("loading config: %w", err)
			}

			dbPath := cmd.String(dbFlagName)
			if dbPath == "" {
				dbPath = filepath.Join(getHomeDir(), data.DataFileName)
			}

			if err := data.Init(dbPath); err != nil {
				return ctx, fmt.Errorf("initializing database: %w", err)
			}

			db, err := data.GetDB(dbPath)
			if err != nil {
				return ctx, fmt.Errorf("opening database: %w", err)
			}

			lex, err := lexicon.New()
			if err != nil {
				db.Close()
				return ctx, fmt.Errorf("loading lexicon: %w", err)
			}

			cmd.Metadata[appConfigKey] = &appConfig{
				DBPath:    dbPath,
				ConfigDir: confDir,
				Debug:     cmd.Bool(debugFlagName),
				Format:    format,
				DB:        db,
				Config:    conf,
				Lexicon:   lex,
			}
			return ctx, nil
		},
		After: func(_ context.Context, cmd *urfave.Command) error {
			if cfg, ok := cmd.Metadata[appConfigKey].(*appConfig); ok && cfg.DB != nil {
				cfg.DB.Close()
			}
			return nil
		},
	}
}

func initLogging(debug bool) {
	level := "info"
	if debug {
		level = "debug"
	}
	logging.SetDefaultCLILogger(level)
}

func getHomeDir() string {
	dir, _, err := config.GetOrCreateHomeDir(appName)
	if err != nil {
		slog.Debug("error getting home dir, using current dir instead", "error", err)
		return "."
	}
	return dir
}

func writer(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func encode(cmd *urfave.Command, v any) error {
	w := writer(cmd)
	if getConfig(cmd).Format == formatYAML {
		return yaml.NewEncoder(w).Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
