package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/pawpair/pkg/compat"
	"github.com/mchmarny/pawpair/pkg/data"
	urfave "github.com/urfave/cli/v3"
)

const smoothingFlagName = "k"

func smoothingFlag() urfave.Flag {
	return &urfave.FloatFlag{
		Name:  smoothingFlagName,
		Usage: "Smoothing parameter, must be positive (optional, defaults to config)",
	}
}

func newScoreCmd() *urfave.Command {
	return &urfave.Command{
		Name:   "score",
		Usage:  "Score the overall compatibility of two dogs",
		Flags:  append(pairFlags(), smoothingFlag()),
		Action: cmdScore,
	}
}

func newRankCmd() *urfave.Command {
	return &urfave.Command{
		Name:   "rank",
		Usage:  "Rank every catalog dog by overall compatibility with the target",
		Flags:  []urfave.Flag{targetFlag(), smoothingFlag()},
		Action: cmdRank,
	}
}

func pipeline(cmd *urfave.Command) *compat.Pipeline {
	cfg := getConfig(cmd)
	p := cfg.Config.Pipeline(cfg.Lexicon)
	if cmd.IsSet(smoothingFlagName) {
		p.K = cmd.Float(smoothingFlagName)
	}
	return p
}

func cmdScore(_ context.Context, cmd *urfave.Command) error {
	db := getConfig(cmd).DB

	a, err := data.GetSubject(db, cmd.String(firstFlagName))
	if err != nil {
		return fmt.Errorf("getting first dog: %w", err)
	}
	b, err := data.GetSubject(db, cmd.String(secondFlagName))
	if err != nil {
		return fmt.Errorf("getting second dog: %w", err)
	}

	r, err := pipeline(cmd).Run(a, b)
	if err != nil {
		return fmt.Errorf("scoring %s and %s: %w", a.ID, b.ID, err)
	}
	return encode(cmd, r)
}

func cmdRank(_ context.Context, cmd *urfave.Command) error {
	db := getConfig(cmd).DB

	target, err := data.GetSubject(db, cmd.String(targetFlagName))
	if err != nil {
		return fmt.Errorf("getting target dog: %w", err)
	}
	candidates, err := data.ListSubjects(db, target.ID)
	if err != nil {
		return fmt.Errorf("listing candidates: %w", err)
	}

	list, err := pipeline(cmd).Rank(target, candidates)
	if err != nil {
		return fmt.Errorf("ranking against %s: %w", target.ID, err)
	}
	return encode(cmd, list)
}
