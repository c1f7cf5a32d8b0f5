package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
	"github.com/scarevision/casebook/internal/service/common"
)

var creds = Credentials{APIKey: "secret", BaseID: "appBase"}

func TestListSendsAuthAndQuery(t *testing.T) {
	var seen *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		_, _ = w.Write([]byte(`{"records":[{"id":"rec1","fields":{"Name":"Jo"}},{"id":"rec2"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client(), nil)
	page, err := c.List(context.Background(), ListRequest{
		Credentials: creds,
		Table:       "Case 12",
		Fields:      []string{"Name", "Age"},
		Formula:     EqualsFormula("Case Number", 12),
		MaxRecords:  1,
		PageSize:    500,
	})
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, "/v0/appBase/Case 12", seen.URL.Path)
	assert.Equal(t, "Bearer secret", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get("X-Request-Id"))
	q := seen.URL.Query()
	assert.Equal(t, []string{"Name", "Age"}, q["fields[]"])
	assert.Equal(t, "{Case Number}=12", q.Get("filterByFormula"))
	assert.Equal(t, "1", q.Get("maxRecords"))
	assert.Equal(t, "100", q.Get("pageSize"))

	require.Len(t, page.Records, 2)
	assert.Equal(t, "rec1", page.Records[0].ID)
	assert.NotNil(t, page.Records[1].Fields)
}

func TestListUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"TABLE_NOT_FOUND"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).List(context.Background(), ListRequest{Credentials: creds, Table: "Nope"})
	require.Error(t, err)

	e, ok := common.AsError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeUpstream, e.Code)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Contains(t, e.Detail, "TABLE_NOT_FOUND")
}

func TestListDecodeFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).List(context.Background(), ListRequest{Credentials: creds, Table: "T"})
	assert.ErrorIs(t, err, &common.Error{Code: common.CodeTransport})
}

func TestListWithoutCredentialsMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).List(context.Background(), ListRequest{Credentials: Credentials{BaseID: "appBase"}, Table: "T"})
	assert.ErrorIs(t, err, &common.Error{Code: common.CodeConfiguration})
	assert.Zero(t, calls.Load())
}

func TestListAllFollowsOffsets(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		off := r.URL.Query().Get("offset")
		offsets = append(offsets, off)
		var page Page
		switch off {
		case "":
			page = Page{Offset: "itrA"}
			page.Records = append(page.Records, recordJSON("rec1"), recordJSON("rec2"))
		case "itrA":
			page = Page{Offset: "itrB"}
			page.Records = append(page.Records, recordJSON("rec3"))
		default:
			page.Records = append(page.Records, recordJSON("rec4"))
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, srv.Client(), nil).ListAll(context.Background(), ListRequest{Credentials: creds, Table: "tblIndex", PageSize: MaxPageSize})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "itrA", "itrB"}, offsets)
	require.Len(t, got, 4)
	assert.Equal(t, "rec4", got[3].ID)
}

func TestListAllStopsOnFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"records":[{"id":"rec1","fields":{}}],"offset":"next"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).ListAll(context.Background(), ListRequest{Credentials: creds, Table: "T"})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, common.HTTPStatus(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestListAllRejectsRepeatingOffset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[],"offset":"same"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).ListAll(context.Background(), ListRequest{Credentials: creds, Table: "T"})
	assert.ErrorContains(t, err, "repeating offset")
}

func TestClientPerAPIKey(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	for _, key := range []string{"caseKey", "listKey", "caseKey"} {
		_, err := c.List(context.Background(), ListRequest{Credentials: Credentials{APIKey: key, BaseID: "appBase"}, Table: "T"})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Bearer caseKey", "Bearer listKey", "Bearer caseKey"}, keys)
	assert.Len(t, c.apis, 2)
}

func TestRequestIDIsForwarded(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(middleware.RequestIDHeader)
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	_, err := NewClient(srv.URL, srv.Client(), nil).List(ctx, ListRequest{Credentials: creds, Table: "T"})
	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}

func TestEqualsFormulaStripsBraces(t *testing.T) {
	assert.Equal(t, "{Case Number}=7", EqualsFormula("{Case Number}", 7))
}

func recordJSON(id string) record.Record {
	return record.Record{ID: id, Fields: record.Fields{"Order": 1.0}}
}
