package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/adapters/http/openapi"
	"github.com/scarevision/casebook/internal/service/casebook/app"
	"github.com/scarevision/casebook/internal/service/casebook/app/commands"
	"github.com/scarevision/casebook/internal/service/casebook/app/queries"
	"github.com/scarevision/casebook/internal/service/casebook/domain/marking"
	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/common"
)

const maxForwardedDetail = 500

// CachePolicy is sent as public, s-maxage=MaxAge, stale-while-revalidate=SWR.
type CachePolicy struct {
	MaxAge               int
	StaleWhileRevalidate int
}

func (c CachePolicy) Header() string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", c.MaxAge, c.StaleWhileRevalidate)
}

type Options struct {
	CaseCache CachePolicy
	ListCache CachePolicy
	// ForwardUpstreamDetail adds the record service's error body, truncated,
	// to upstream error responses.
	ForwardUpstreamDetail bool
}

type Server struct {
	cmdBus   app.CommandBus
	queryBus app.QueryBus
	swagger  *openapi3.T
	opts     Options
	logger   *zap.Logger
}

var _ openapi.ServerInterface = (*Server)(nil)

func NewServer(cmdBus app.CommandBus, queryBus app.QueryBus, swagger *openapi3.T, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cmdBus:   cmdBus,
		queryBus: queryBus,
		swagger:  swagger,
		opts:     opts,
		logger:   logger,
	}
}

func (s *Server) GetCase(w http.ResponseWriter, r *http.Request, params openapi.GetCaseParams) {
	w.Header().Set("Cache-Control", s.opts.CaseCache.Header())

	result, err := s.queryBus.GetCaseRecords(r.Context(), queries.GetCaseRecordsQuery{Table: deref(params.Table)})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, openapi.CaseResponse{
		Records: caseRecords(result.Records),
		Profile: caseProfile(result.Profile),
	})
}

func (s *Server) GetCasePage(w http.ResponseWriter, r *http.Request, params openapi.GetCasePageParams) {
	w.Header().Set("Cache-Control", s.opts.CaseCache.Header())

	result, err := s.queryBus.RenderCasePage(r.Context(), queries.RenderCasePageQuery{Table: deref(params.Table)})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.HTML)
}

func (s *Server) ListCases(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", s.opts.ListCache.Header())

	result, err := s.queryBus.ListCases(r.Context(), queries.ListCasesQuery{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, openapi.RecordList{Records: caseRecords(result.Records)})
}

func (s *Server) ScoreMarking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	var in openapi.ScoreMarkingJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, r, common.WrapError(common.CodeClientInput, "Invalid JSON body", err))
		return
	}
	section, err := marking.ParseSection(string(in.Section))
	if err != nil {
		s.writeError(w, r, common.WrapError(common.CodeClientInput, "Unknown marking section", err))
		return
	}

	cmd := commands.ScoreMarkingCommand{
		Section:  section,
		Positive: in.Positive,
		Negative: in.Negative,
	}
	if in.Toggle != nil {
		polarity, err := marking.ParsePolarity(string(in.Toggle.Polarity))
		if err != nil {
			s.writeError(w, r, common.WrapError(common.CodeClientInput, "Unknown polarity", err))
			return
		}
		cmd.Toggle = &commands.Toggle{Polarity: polarity, Index: in.Toggle.Index, Checked: in.Toggle.Checked}
	}

	result, err := s.cmdBus.ScoreMarking(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, openapi.ScoreMarkingResponse{
		Section:    openapi.MarkingSection(result.Section),
		State:      openapi.MarkingState{Positive: result.Positive, Negative: result.Negative},
		Score:      result.Score,
		Max:        result.MaxScore,
		Percentage: float32(result.Percentage),
		Band:       result.Band.Label,
		Class:      result.Band.Class,
	})
}

func (s *Server) GetOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.swagger)
}

func (s *Server) GetHealthStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, openapi.Health{Status: "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatus(err)
	body := openapi.Error{Error: common.PublicMessage(err)}
	if e, ok := common.AsError(err); ok && e.Code == common.CodeUpstream && s.opts.ForwardUpstreamDetail && e.Detail != "" {
		detail := truncate(e.Detail, maxForwardedDetail)
		body.Detail = &detail
	}

	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", fields...)
	} else {
		s.logger.Info("request rejected", fields...)
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func caseRecords(in []record.Record) []openapi.CaseRecord {
	out := make([]openapi.CaseRecord, len(in))
	for i, rec := range in {
		fields := map[string]interface{}(rec.Fields)
		if fields == nil {
			fields = map[string]interface{}{}
		}
		out[i] = openapi.CaseRecord{Id: rec.ID, Fields: fields}
	}
	return out
}

func caseProfile(p *queries.Profile) *openapi.CaseProfile {
	if p == nil {
		return nil
	}
	return &openapi.CaseProfile{
		Ok:              p.OK,
		Found:           p.Found,
		RecordId:        optional(p.RecordID),
		PatientImageUrl: optional(p.PatientImageURL),
		Error:           optional(p.Error),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
