// Package http provides http transport for the board
package http

import (
	stdhttp "net/http"

	"eipwatch/internal/modkit/httpkit"
	"eipwatch/internal/platform/logger"
	"eipwatch/internal/services/api/board/domain"
	svc "eipwatch/internal/services/api/board/service"
)

// Register mounts board endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// attention counts per bucket
	httpkit.PostJSON[domain.SummaryInput](r, "/summary", h.summary)

	// filtered snapshot listing
	httpkit.PostJSON[domain.ListInput](r, "/prs", h.list)

	// daily aggregate series
	httpkit.PostJSON[domain.TrendsInput](r, "/trends", h.trends)

	// CSV is a raw stream, not an envelope
	r.Handle("/export.csv", stdhttp.HandlerFunc(h.exportCSV))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /board/summary Board boardSummary
// @Summary Attention counts per category and subcategory
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body domain.SummaryInput true "Scope"
// @Success 200 {array} domain.SummaryRow "ok"
// @Router /board/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}

// swagger:route POST /board/prs Board boardPRs
// @Summary Open pull requests with their attention verdicts
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.PRRow "ok"
// @Router /board/prs [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// swagger:route POST /board/trends Board boardTrends
// @Summary Daily attention aggregates over a date range
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body domain.TrendsInput true "Query"
// @Success 200 {array} domain.TrendRow "ok"
// @Router /board/trends [post]
func (h *handlers) trends(r *stdhttp.Request, in domain.TrendsInput) (any, error) {
	return h.svc.Trends(r.Context(), in)
}

// @Summary Export the current snapshots as CSV
// @Tags Board
// @Produce text/csv
// @Param category query string false "Category filter"
// @Param subcategory query string false "Subcategory filter"
// @Success 200 {string} string "csv"
// @Router /board/export.csv [get]
func (h *handlers) exportCSV(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	in := domain.ListInput{
		Repo:        q.Get("repo"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Limit:       500,
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pr-attention.csv"`)
	if err := h.svc.ExportCSV(r.Context(), in, w); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("csv export failed")
		stdhttp.Error(w, "export failed", stdhttp.StatusInternalServerError)
	}
}
