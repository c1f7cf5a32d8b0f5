package app

import (
	"context"

	"github.com/scarevision/casebook/internal/service/casebook/app/commands"
	"github.com/scarevision/casebook/internal/service/casebook/app/queries"
)

type CommandBus interface {
	ScoreMarking(ctx context.Context, cmd commands.ScoreMarkingCommand) (commands.ScoreMarkingResult, error)
}

type QueryBus interface {
	GetCaseRecords(ctx context.Context, q queries.GetCaseRecordsQuery) (queries.GetCaseRecordsResult, error)
	ListCases(ctx context.Context, q queries.ListCasesQuery) (queries.ListCasesResult, error)
	RenderCasePage(ctx context.Context, q queries.RenderCasePageQuery) (queries.RenderCasePageResult, error)
}

type commandBus struct {
	scoreMarking commands.ScoreMarkingHandler
}

type queryBus struct {
	getCaseRecords queries.GetCaseRecordsQueryHandler
	listCases      queries.ListCasesQueryHandler
	renderCasePage queries.RenderCasePageQueryHandler
}

func NewCommandBus(score commands.ScoreMarkingHandler) CommandBus {
	return &commandBus{
		scoreMarking: score,
	}
}

func NewQueryBus(
	getCase queries.GetCaseRecordsQueryHandler,
	listCases queries.ListCasesQueryHandler,
	renderPage queries.RenderCasePageQueryHandler,
) QueryBus {
	return &queryBus{
		getCaseRecords: getCase,
		listCases:      listCases,
		renderCasePage: renderPage,
	}
}

func (b *commandBus) ScoreMarking(ctx context.Context, cmd commands.ScoreMarkingCommand) (commands.ScoreMarkingResult, error) {
	return b.scoreMarking.Handle(ctx, cmd)
}

func (b *queryBus) GetCaseRecords(ctx context.Context, q queries.GetCaseRecordsQuery) (queries.GetCaseRecordsResult, error) {
	return b.getCaseRecords.Handle(ctx, q)
}

func (b *queryBus) ListCases(ctx context.Context, q queries.ListCasesQuery) (queries.ListCasesResult, error) {
	return b.listCases.Handle(ctx, q)
}

func (b *queryBus) RenderCasePage(ctx context.Context, q queries.RenderCasePageQuery) (queries.RenderCasePageResult, error) {
	return b.renderCasePage.Handle(ctx, q)
}
