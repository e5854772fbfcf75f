package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/pawpair/pkg/data"
	urfave "github.com/urfave/cli/v3"
)

const idFlagName = "id"

func newDogsCmd() *urfave.Command {
	return &urfave.Command{
		Name:            "dogs",
		Usage:           "Query the dog catalog",
		HideHelpCommand: true,
		Commands: []*urfave.Command{
			{
				Name:   "list",
				Usage:  "List all dogs",
				Action: cmdListDogs,
			},
			{
				Name:  "show",
				Usage: "Show one dog with its reviews",
				Flags: []urfave.Flag{
					&urfave.StringFlag{
						Name:     idFlagName,
						Usage:    "Dog ID",
						Required: true,
					},
				},
				Action: cmdShowDog,
			},
			{
				Name:   "stats",
				Usage:  "Show catalog counts",
				Action: cmdDogStats,
			},
		},
	}
}

func cmdListDogs(_ context.Context, cmd *urfave.Command) error {
	list, err := data.ListDogs(getConfig(cmd).DB)
	if err != nil {
		return fmt.Errorf("listing dogs: %w", err)
	}
	return encode(cmd, list)
}

func cmdShowDog(_ context.Context, cmd *urfave.Command) error {
	id := cmd.String(idFlagName)
	d, err := data.GetDog(getConfig(cmd).DB, id)
	if err != nil {
		return fmt.Errorf("getting dog %s: %w", id, err)
	}
	return encode(cmd, d)
}

func cmdDogStats(_ context.Context, cmd *urfave.Command) error {
	state, err := data.GetDataState(getConfig(cmd).DB)
	if err != nil {
		return fmt.Errorf("getting catalog state: %w", err)
	}
	return encode(cmd, state)
}
