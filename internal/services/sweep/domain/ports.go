package domain

import (
	"context"

	editorsdom "eipwatch/internal/services/editors/domain"
	snapdom "eipwatch/internal/services/snapshots/domain"
)

// RunnerPort executes one full sweep over the watched repo
type RunnerPort interface {
	RunOnce(ctx context.Context) (Summary, error)
}

// Ports are the dependency ports the sweep module requires
type Ports struct {
	Snapshots snapdom.WriterPort
	Roster    editorsdom.RosterPort
}
