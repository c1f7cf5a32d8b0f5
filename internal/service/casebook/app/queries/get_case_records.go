package queries

import (
	"context"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/airtable"
	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/common"
)

var caseNumberPattern = regexp.MustCompile(`(?i)\bCase\s*(\d+)\b`)

type GetCaseRecordsQuery struct {
	Table string
}

// Profile is the case profile lookup outcome. A failed lookup never fails
// the request; it is reported here instead.
type Profile struct {
	OK              bool   `json:"ok"`
	Found           bool   `json:"found"`
	RecordID        string `json:"recordId,omitempty"`
	PatientImageURL string `json:"patientImageUrl,omitempty"`
	Error           string `json:"error,omitempty"`
}

type GetCaseRecordsResult struct {
	Records []record.Record
	// Profile is nil unless enrichment is enabled and the table names a case.
	Profile *Profile
}

type GetCaseRecordsQueryHandler interface {
	Handle(ctx context.Context, query GetCaseRecordsQuery) (GetCaseRecordsResult, error)
}

// ProfileLookup configures the second lookup against the case profile table.
type ProfileLookup struct {
	Enabled    bool
	Table      string
	CaseField  string
	ImageField string
}

type CaseSource struct {
	Credentials airtable.Credentials
	// FieldAllowlist, when set, limits each record to exactly these fields.
	FieldAllowlist []string
	Profile        ProfileLookup
}

func NewGetCaseRecordsQueryHandler(records RecordLister, source CaseSource, logger *zap.Logger) GetCaseRecordsQueryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &getCaseRecordsQueryHandler{
		records: records,
		source:  source,
		logger:  logger,
	}
}

type getCaseRecordsQueryHandler struct {
	records RecordLister
	source  CaseSource
	logger  *zap.Logger
}

func (h *getCaseRecordsQueryHandler) Handle(ctx context.Context, query GetCaseRecordsQuery) (GetCaseRecordsResult, error) {
	if query.Table == "" {
		return GetCaseRecordsResult{}, common.NewError(common.CodeClientInput, "Missing 'table' query parameter")
	}
	if !h.source.Credentials.Complete() {
		h.logger.Error("missing airtable credentials")
		return GetCaseRecordsResult{}, common.NewError(common.CodeConfiguration, "Server not configured correctly")
	}

	req := airtable.ListRequest{
		Credentials: h.source.Credentials,
		Table:       query.Table,
		Fields:      h.source.FieldAllowlist,
	}
	page, err := h.records.List(ctx, req)
	if err != nil {
		return GetCaseRecordsResult{}, err
	}

	result := GetCaseRecordsResult{Records: h.reshape(page.Records)}
	if h.source.Profile.Enabled {
		if n, ok := caseNumber(query.Table); ok {
			profile := h.lookupProfile(ctx, n)
			result.Profile = &profile
		}
	}
	return result, nil
}

// reshape keeps id and fields. With an allowlist every record carries exactly
// the allowlisted fields, absent ones as null.
func (h *getCaseRecordsQueryHandler) reshape(in []record.Record) []record.Record {
	out := make([]record.Record, len(in))
	for i, rec := range in {
		fields := rec.Fields
		if fields == nil {
			fields = record.Fields{}
		}
		if len(h.source.FieldAllowlist) > 0 {
			picked := make(record.Fields, len(h.source.FieldAllowlist))
			for _, name := range h.source.FieldAllowlist {
				picked[name] = fields[name]
			}
			fields = picked
		}
		out[i] = record.Record{ID: rec.ID, Fields: fields}
	}
	return out
}

func (h *getCaseRecordsQueryHandler) lookupProfile(ctx context.Context, caseNo int) Profile {
	p := h.source.Profile
	page, err := h.records.List(ctx, airtable.ListRequest{
		Credentials: h.source.Credentials,
		Table:       p.Table,
		Fields:      []string{p.CaseField, p.ImageField},
		Formula:     airtable.EqualsFormula(p.CaseField, caseNo),
		MaxRecords:  1,
	})
	if err != nil {
		h.logger.Warn("case profile lookup failed", zap.Int("case", caseNo), zap.Error(err))
		return Profile{OK: false, Error: common.PublicMessage(err)}
	}
	if len(page.Records) == 0 {
		return Profile{OK: true}
	}

	rec := page.Records[0]
	profile := Profile{OK: true, Found: true, RecordID: rec.ID}
	if images := record.WithURL(record.Attachments(rec.Get(p.ImageField))); len(images) > 0 {
		profile.PatientImageURL = images[0].ResolveURL()
	}
	return profile
}

// caseNumber extracts N from table names such as "Case 12".
func caseNumber(table string) (int, bool) {
	m := caseNumberPattern.FindStringSubmatch(table)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
