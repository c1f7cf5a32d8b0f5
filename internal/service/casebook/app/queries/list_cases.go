package queries

import (
	"context"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/airtable"
	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/common"
)

// CaseListFields are the index table fields the case list page reads.
var CaseListFields = []string{
	"Themes",
	"Video Link",
	"Clinical Topics",
	"Domain",
	"Name",
	"Presenting Complaint",
	"Link",
	"Link-nt",
	"Difficulty",
	"Case ID",
	"Case Number",
	"Case",
}

type ListCasesQuery struct{}

type ListCasesResult struct {
	Records []record.Record
}

type ListCasesQueryHandler interface {
	Handle(ctx context.Context, query ListCasesQuery) (ListCasesResult, error)
}

type CaseListSource struct {
	Credentials airtable.Credentials
	Table       string
}

func NewListCasesQueryHandler(records RecordLister, source CaseListSource) ListCasesQueryHandler {
	return &listCasesQueryHandler{records: records, source: source}
}

type listCasesQueryHandler struct {
	records RecordLister
	source  CaseListSource
}

func (h *listCasesQueryHandler) Handle(ctx context.Context, _ ListCasesQuery) (ListCasesResult, error) {
	if h.source.Credentials.APIKey == "" {
		return ListCasesResult{}, common.NewError(common.CodeConfiguration, "Missing AIRTABLE_CASELIST_API_KEY env var")
	}
	all, err := h.records.ListAll(ctx, airtable.ListRequest{
		Credentials: h.source.Credentials,
		Table:       h.source.Table,
		Fields:      CaseListFields,
		PageSize:    airtable.MaxPageSize,
	})
	if err != nil {
		// A failed page fails the listing with that page's status.
		return ListCasesResult{}, err
	}
	if all == nil {
		all = []record.Record{}
	}
	return ListCasesResult{Records: all}, nil
}
