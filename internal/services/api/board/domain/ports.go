package domain

import (
	"context"
	"io"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Summary(ctx context.Context, in SummaryInput) ([]SummaryRow, error)
	List(ctx context.Context, in ListInput) ([]PRRow, error)
	Trends(ctx context.Context, in TrendsInput) ([]TrendRow, error)

	// ExportCSV streams the filtered listing as CSV
	ExportCSV(ctx context.Context, in ListInput, w io.Writer) error
}
