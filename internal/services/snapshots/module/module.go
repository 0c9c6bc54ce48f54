// Package module implements the snapshots service module
package module

import (
	"eipwatch/internal/modkit"
	"eipwatch/internal/modkit/httpkit"
	"eipwatch/internal/services/snapshots/domain"
	"eipwatch/internal/services/snapshots/repo"
	"eipwatch/internal/services/snapshots/service"
)

// Ports exposed by the snapshots module
type Ports struct {
	Writer domain.WriterPort
}

// Module implements the snapshots service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new snapshots module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), deps.CH, service.Config{
		DailyTable: opts.DailyTable,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "snapshots" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
