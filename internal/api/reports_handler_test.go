package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rtboard/backend/internal/cache"
	"github.com/rtboard/backend/internal/config"
	"github.com/rtboard/backend/internal/fetch"
	"github.com/rtboard/backend/internal/report"
	"github.com/rtboard/backend/internal/types"
)

type stubSearcher struct {
	table types.Table
	err   error
}

func (s *stubSearcher) Search(ctx context.Context, query, fields string) (types.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func newReportsHandler(searcher *stubSearcher) *ReportsHandler {
	section := config.ReportSection{
		QueryParameters: config.QueryParams{Query: "Queue = 'help'", Fields: "id,Created"},
	}
	reports := &config.Reports{
		HelpOverview: section,
		Customers:    section,
		Domains:      section,
		IDMTickets:   section,
		Requestors:   section,
		ResponseTime: section,
	}
	fetcher := fetch.NewFetcher(searcher, "reporter", cache.NewTableCache(time.Hour, nil), zerolog.Nop())
	now := func() time.Time { return time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC) }
	service := report.NewService(fetcher, reports, "https://rt.example/", 2024, now, zerolog.Nop())
	return NewReportsHandler(service, zerolog.Nop())
}

func sampleSearcher() *stubSearcher {
	return &stubSearcher{table: types.Table{
		{"id": "101", types.FieldCreated: "Mon Jan 15 10:00:00 2024"},
	}}
}

func TestHandleHelpOverview(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/help-overview?periods=2024", nil)
	rec := httptest.NewRecorder()
	h.HandleHelpOverview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var payload report.Overview
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Totals) != 1 || payload.Totals[0].Count != 1 {
		t.Errorf("unexpected totals: %v", payload.Totals)
	}
}

func TestHandleHelpOverviewBadPeriods(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	tests := []struct {
		name string
		url  string
	}{
		{name: "missing", url: "/api/reports/help-overview"},
		{name: "malformed", url: "/api/reports/help-overview?periods=banana"},
		{name: "bad quarter", url: "/api/reports/help-overview?periods=2024-Q7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleHelpOverview(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleHelpOverviewFutureQuarter(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/help-overview?periods=2025-Q4", nil)
	h.HandleHelpOverview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a future quarter, got %d", rec.Code)
	}
}

func TestHandleHelpOverviewUpstreamFailure(t *testing.T) {
	h := newReportsHandler(&stubSearcher{err: context.DeadlineExceeded})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/help-overview?periods=2024", nil)
	h.HandleHelpOverview(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestHandleCustomersTopValidation(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/customers?periods=2024&top=0", nil)
	h.HandleCustomers(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for top=0, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reports/customers?periods=2024&top=5", nil)
	h.HandleCustomers(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleResponseTimesClockParam(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/response-times?years=2024&clock=business", nil)
	h.HandleResponseTimes(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload report.ResponseTimes
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Clock != "business" {
		t.Errorf("expected business clock, got %q", payload.Clock)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/reports/response-times?years=2024&clock=lunar", nil)
	h.HandleResponseTimes(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown clock, got %d", rec.Code)
	}
}

func TestHandleRequestorsBadYears(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/requestors?years=abc", nil)
	h.HandleRequestors(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleHelpOverviewMarkdown(t *testing.T) {
	h := newReportsHandler(sampleSearcher())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/help-overview/markdown?periods=2024", nil)
	h.HandleHelpOverviewMarkdown(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("expected markdown content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "help_queue_report.md") {
		t.Errorf("expected attachment filename, got %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "# Help Queue Overview Report") {
		t.Errorf("unexpected document start: %q", rec.Body.String()[:40])
	}
}
