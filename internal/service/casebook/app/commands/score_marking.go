package commands

import (
	"context"
	"errors"

	"github.com/scarevision/casebook/internal/service/casebook/domain/marking"
	"github.com/scarevision/casebook/internal/service/common"
)

// Toggle is one checkbox change.
type Toggle struct {
	Polarity marking.Polarity
	Index    int
	Checked  bool
}

type ScoreMarkingCommand struct {
	Section  marking.Section
	Positive []bool
	Negative []bool
	// Toggle is optional; without it the submitted state is scored as is.
	Toggle *Toggle
}

type ScoreMarkingResult struct {
	Section    marking.Section
	Positive   []bool
	Negative   []bool
	Score      int
	MaxScore   int
	Percentage float64
	Band       marking.Band
}

type ScoreMarkingHandler interface {
	Handle(ctx context.Context, cmd ScoreMarkingCommand) (ScoreMarkingResult, error)
}

func NewScoreMarkingHandler() ScoreMarkingHandler {
	return &scoreMarkingCmdHandler{}
}

type scoreMarkingCmdHandler struct{}

func (h *scoreMarkingCmdHandler) Handle(_ context.Context, cmd ScoreMarkingCommand) (ScoreMarkingResult, error) {
	sheet := marking.SheetFromState(cmd.Positive, cmd.Negative)
	if cmd.Toggle != nil {
		if err := sheet.Toggle(cmd.Toggle.Polarity, cmd.Toggle.Index, cmd.Toggle.Checked); err != nil {
			if errors.Is(err, marking.ErrIndexOutOfRange) {
				return ScoreMarkingResult{}, common.WrapError(common.CodeClientInput, "Invalid checkbox index", err)
			}
			return ScoreMarkingResult{}, err
		}
	}
	return ScoreMarkingResult{
		Section:    cmd.Section,
		Positive:   sheet.Positive(),
		Negative:   sheet.Negative(),
		Score:      sheet.Score(),
		MaxScore:   sheet.MaxScore(),
		Percentage: sheet.Percentage(),
		Band:       sheet.Band(),
	}, nil
}
