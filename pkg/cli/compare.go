package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/pawpair/pkg/data"
	"github.com/mchmarny/pawpair/pkg/similarity"
	urfave "github.com/urfave/cli/v3"
)

const (
	firstFlagName     = "a"
	secondFlagName    = "b"
	targetFlagName    = "target"
	thresholdFlagName = "threshold"
)

func pairFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.StringFlag{
			Name:     firstFlagName,
			Usage:    "ID of the first dog",
			Required: true,
		},
		&urfave.StringFlag{
			Name:     secondFlagName,
			Usage:    "ID of the second dog",
			Required: true,
		},
	}
}

func targetFlag() urfave.Flag {
	return &urfave.StringFlag{
		Name:     targetFlagName,
		Usage:    "ID of the dog to match against the catalog",
		Required: true,
	}
}

func thresholdFlag() urfave.Flag {
	return &urfave.FloatFlag{
		Name:  thresholdFlagName,
		Usage: "Minimum trait similarity for a compatible pair (optional, defaults to config)",
	}
}

func newCompareCmd() *urfave.Command {
	return &urfave.Command{
		Name:   "compare",
		Usage:  "Compare the traits of two dogs",
		Flags:  append(pairFlags(), thresholdFlag()),
		Action: cmdCompare,
	}
}

func newMatchCmd() *urfave.Command {
	return &urfave.Command{
		Name:   "match",
		Usage:  "Find catalog dogs with traits similar to the target",
		Flags:  []urfave.Flag{targetFlag(), thresholdFlag()},
		Action: cmdMatch,
	}
}

func calculator(cmd *urfave.Command) *similarity.Calculator {
	calc := getConfig(cmd).Config.Calculator()
	if cmd.IsSet(thresholdFlagName) {
		calc.Threshold = cmd.Float(thresholdFlagName)
	}
	return calc
}

func cmdCompare(_ context.Context, cmd *urfave.Command) error {
	db := getConfig(cmd).DB

	a, err := data.GetDog(db, cmd.String(firstFlagName))
	if err != nil {
		return fmt.Errorf("getting first dog: %w", err)
	}
	b, err := data.GetDog(db, cmd.String(secondFlagName))
	if err != nil {
		return fmt.Errorf("getting second dog: %w", err)
	}

	return encode(cmd, calculator(cmd).Compare(a.ID, a.Traits(), b.ID, b.Traits()))
}

func cmdMatch(_ context.Context, cmd *urfave.Command) error {
	db := getConfig(cmd).DB

	target, err := data.GetDog(db, cmd.String(targetFlagName))
	if err != nil {
		return fmt.Errorf("getting target dog: %w", err)
	}

	candidates, err := data.ListCandidates(db, target.ID)
	if err != nil {
		return fmt.Errorf("listing candidates: %w", err)
	}

	return encode(cmd, calculator(cmd).FindCompatible(target.ID, target.Traits(), candidates))
}
