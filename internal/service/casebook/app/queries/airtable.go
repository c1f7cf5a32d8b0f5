package queries

import (
	"context"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/airtable"
	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

// RecordLister is the part of the record service client the queries use.
type RecordLister interface {
	List(ctx context.Context, req airtable.ListRequest) (airtable.Page, error)
	ListAll(ctx context.Context, req airtable.ListRequest) ([]record.Record, error)
}
