package commands

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarevision/casebook/internal/service/casebook/domain/marking"
	"github.com/scarevision/casebook/internal/service/common"
)

func TestScoreMarkingAppliesToggle(t *testing.T) {
	h := NewScoreMarkingHandler()

	got, err := h.Handle(context.Background(), ScoreMarkingCommand{
		Section:  marking.DataGathering,
		Positive: []bool{true, true, true, false, false},
		Negative: []bool{false, false, false, true, false},
		Toggle:   &Toggle{Polarity: marking.Positive, Index: 3, Checked: true},
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, true, true, false}, got.Positive)
	assert.Equal(t, []bool{false, false, false, false, false}, got.Negative)
	assert.Equal(t, 7, got.Score)
	assert.Equal(t, 8, got.MaxScore)
	assert.InDelta(t, 87.5, got.Percentage, 0.001)
	assert.Equal(t, marking.ClearPass, got.Band)
}

func TestScoreMarkingNegativeForcesPositiveOff(t *testing.T) {
	got, err := NewScoreMarkingHandler().Handle(context.Background(), ScoreMarkingCommand{
		Section:  marking.ClinicalManagement,
		Positive: []bool{true, false},
		Negative: []bool{false, false},
		Toggle:   &Toggle{Polarity: marking.Negative, Index: 0, Checked: true},
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false}, got.Positive)
	assert.Equal(t, []bool{true, false}, got.Negative)
	assert.Equal(t, marking.ClearFail, got.Band)
}

func TestScoreMarkingRejectsBadIndex(t *testing.T) {
	_, err := NewScoreMarkingHandler().Handle(context.Background(), ScoreMarkingCommand{
		Section:  marking.RelatingToOthers,
		Positive: []bool{false},
		Negative: []bool{false},
		Toggle:   &Toggle{Polarity: marking.Positive, Index: 4, Checked: true},
	})
	assert.Equal(t, http.StatusBadRequest, common.HTTPStatus(err))
}
