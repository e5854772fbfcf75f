package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/pawpair/pkg/sentiment"
	urfave "github.com/urfave/cli/v3"
)

const textFlagName = "text"

func newSentimentCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "sentiment",
		Usage: "Score the sentiment of one or more review texts",

		// one --text is one review, commas included
		DisableSliceFlagSeparator: true,

		Flags: []urfave.Flag{
			&urfave.StringSliceFlag{
				Name:     textFlagName,
				Usage:    "Review text to score (repeatable)",
				Required: true,
			},
		},
		Action: cmdSentiment,
	}
}

type textScore struct {
	Text  string  `json:"text" yaml:"text"`
	Score float64 `json:"score" yaml:"score"`
}

type sentimentResult struct {
	Texts      []*textScore `json:"texts" yaml:"texts"`
	Average    float64      `json:"average" yaml:"average"`
	Vocabulary int          `json:"vocabulary" yaml:"vocabulary"`
}

func cmdSentiment(_ context.Context, cmd *urfave.Command) error {
	cfg := getConfig(cmd)
	texts := cmd.StringSlice(textFlagName)

	a := sentiment.NewAnalyzer(cfg.Config.TextOptions(), cfg.Lexicon)
	model := a.Fit(texts)

	scores, err := a.AnalyzeAll(texts)
	if err != nil {
		return fmt.Errorf("scoring texts: %w", err)
	}

	res := &sentimentResult{
		Texts:      make([]*textScore, 0, len(texts)),
		Average:    sentiment.Mean(scores),
		Vocabulary: model.Size(),
	}
	for i, t := range texts {
		res.Texts = append(res.Texts, &textScore{Text: t, Score: scores[i]})
	}
	return encode(cmd, res)
}
