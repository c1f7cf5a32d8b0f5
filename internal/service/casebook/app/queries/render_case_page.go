package queries

import (
	"bytes"
	"context"
	"io"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/common"
)

type RenderCasePageQuery struct {
	Table string
}

type RenderCasePageResult struct {
	HTML []byte
}

// PageRenderer paints records into a case page.
type PageRenderer interface {
	RenderPage(w io.Writer, records []record.Record) error
}

type RenderCasePageQueryHandler interface {
	Handle(ctx context.Context, query RenderCasePageQuery) (RenderCasePageResult, error)
}

// NewRenderCasePageQueryHandler loads a case through records and renders it.
func NewRenderCasePageQueryHandler(records GetCaseRecordsQueryHandler, renderer PageRenderer) RenderCasePageQueryHandler {
	return &renderCasePageQueryHandler{records: records, renderer: renderer}
}

type renderCasePageQueryHandler struct {
	records  GetCaseRecordsQueryHandler
	renderer PageRenderer
}

func (h *renderCasePageQueryHandler) Handle(ctx context.Context, query RenderCasePageQuery) (RenderCasePageResult, error) {
	loaded, err := h.records.Handle(ctx, GetCaseRecordsQuery{Table: query.Table})
	if err != nil {
		return RenderCasePageResult{}, err
	}
	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, loaded.Records); err != nil {
		return RenderCasePageResult{}, common.WrapError(common.CodeInternal, "render case page", err)
	}
	return RenderCasePageResult{HTML: buf.Bytes()}, nil
}
