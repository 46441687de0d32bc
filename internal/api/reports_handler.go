package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rtboard/backend/internal/period"
	"github.com/rtboard/backend/internal/report"
)

// ReportsHandler serves the report pages and their markdown exports.
type ReportsHandler struct {
	service *report.Service
	logger  zerolog.Logger
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(service *report.Service, logger zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{
		service: service,
		logger:  logger.With().Str("component", "reports").Logger(),
	}
}

// parsePeriods reads the periods query parameter, e.g.
// periods=2023,2024-Q1.
func parsePeriods(r *http.Request) ([]period.Period, error) {
	return period.ParseList(r.URL.Query().Get("periods"))
}

// parseYears reads the years query parameter for the year-only pages.
func parseYears(r *http.Request) ([]int, error) {
	raw := r.URL.Query().Get("years")
	var years []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.New("invalid years selection")
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return nil, errors.New("no years selected")
	}
	return years, nil
}

func boolParam(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

// respondReport maps service failures onto the error taxonomy: future
// periods are the caller's fault, everything else is the upstream's.
func (h *ReportsHandler) respondReport(w http.ResponseWriter, err error, payload interface{}) {
	if err != nil {
		if errors.Is(err, period.ErrNotSelectable) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("report failed")
		writeError(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *ReportsHandler) respondMarkdown(w http.ResponseWriter, err error, doc, filename string) {
	if err != nil {
		if errors.Is(err, period.ErrNotSelectable) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("markdown export failed")
		writeError(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write([]byte(doc))
}

// HandleHelpOverview handles GET /api/reports/help-overview.
func (h *ReportsHandler) HandleHelpOverview(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := h.service.HelpOverview(r.Context(), periods, boolParam(r, "refresh"))
	h.respondReport(w, err, payload)
}

// HandleHelpOverviewMarkdown handles GET /api/reports/help-overview/markdown.
func (h *ReportsHandler) HandleHelpOverviewMarkdown(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.service.HelpOverviewMarkdown(r.Context(), periods, boolParam(r, "refresh"))
	h.respondMarkdown(w, err, doc, "help_queue_report.md")
}

// HandleCustomers handles GET /api/reports/customers.
func (h *ReportsHandler) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	top := 3
	if v := r.URL.Query().Get("top"); v != "" {
		top, err = strconv.Atoi(v)
		if err != nil || top < 1 {
			writeError(w, http.StatusBadRequest, "invalid top value")
			return
		}
	}
	payload, err := h.service.Customers(r.Context(), periods, top, boolParam(r, "refresh"))
	h.respondReport(w, err, payload)
}

// HandleCustomersMarkdown handles GET /api/reports/customers/markdown.
func (h *ReportsHandler) HandleCustomersMarkdown(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.service.CustomersMarkdown(r.Context(), periods, boolParam(r, "refresh"))
	h.respondMarkdown(w, err, doc, "ticket_ids_report.md")
}

// HandleDomains handles GET /api/reports/domains.
func (h *ReportsHandler) HandleDomains(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := h.service.Domains(r.Context(), periods, boolParam(r, "alt"), boolParam(r, "refresh"))
	h.respondReport(w, err, payload)
}

// HandleResponseTimes handles GET /api/reports/response-times. The clock
// parameter selects the elapsed-time strategy: calendar (default) or
// business.
func (h *ReportsHandler) HandleResponseTimes(w http.ResponseWriter, r *http.Request) {
	years, err := parseYears(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	clock, err := h.service.Clock(r.URL.Query().Get("clock"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := h.service.ResponseTimes(r.Context(), years, boolParam(r, "alt"), clock, boolParam(r, "refresh"))
	h.respondReport(w, err, payload)
}

// HandleRequestors handles GET /api/reports/requestors.
func (h *ReportsHandler) HandleRequestors(w http.ResponseWriter, r *http.Request) {
	years, err := parseYears(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := h.service.Requestors(r.Context(), years, boolParam(r, "alt"), boolParam(r, "refresh"))
	h.respondReport(w, err, payload)
}

// HandleIDMTickets handles GET /api/reports/idm-tickets.
func (h *ReportsHandler) HandleIDMTickets(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := h.service.IDMTickets(r.Context(), periods, boolParam(r, "refresh"))
	h.respondReport(w, err, payload)
}

// HandleIDMTicketsMarkdown handles GET /api/reports/idm-tickets/markdown.
func (h *ReportsHandler) HandleIDMTicketsMarkdown(w http.ResponseWriter, r *http.Request) {
	periods, err := parsePeriods(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.service.IDMTicketsMarkdown(r.Context(), periods, boolParam(r, "refresh"))
	h.respondMarkdown(w, err, doc, "idm_tickets_report.md")
}
