package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/pawpair/pkg/data"
	"github.com/mchmarny/pawpair/pkg/net"
	urfave "github.com/urfave/cli/v3"
)

const fileFlagName = "file"

func newImportCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "import",
		Usage: "Load dogs and their reviews into the local catalog",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:     fileFlagName,
				Usage:    "Path or http(s) URL of the YAML or JSON catalog of dogs and reviews",
				Required: true,
			},
		},
		Action: cmdImport,
	}
}

type importResult struct {
	File string `json:"file" yaml:"file"`
	Dogs int    `json:"dogs" yaml:"dogs"`
}

func cmdImport(ctx context.Context, cmd *urfave.Command) error {
	cfg := getConfig(cmd)
	path := cmd.String(fileFlagName)

	n, err := importCatalog(ctx, cfg, path)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	slog.Debug("import complete", "file", path, "dogs", n)
	return encode(cmd, &importResult{File: path, Dogs: n})
}

func importCatalog(ctx context.Context, cfg *appConfig, path string) (int, error) {
	if !net.IsURL(path) {
		return data.ImportFile(cfg.DB, path)
	}

	body, err := net.Open(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("fetching catalog: %w", err)
	}
	defer body.Close()

	return data.Import(cfg.DB, body)
}
