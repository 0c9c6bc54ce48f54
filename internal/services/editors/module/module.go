// Package module implements the editors service module
package module

import (
	"eipwatch/internal/modkit"
	"eipwatch/internal/modkit/httpkit"
	"eipwatch/internal/services/editors/domain"
	"eipwatch/internal/services/editors/service"
)

// Ports exposed by the editors module
type Ports struct {
	Roster domain.RosterPort
}

// Module implements the editors service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new editors module. api is the GitHub slice for the
// optional roster file and may be nil
func New(deps modkit.Deps, api service.FileFetcher) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(api, service.Config{
		Static: opts.Static,
		Owner:  opts.Owner,
		Repo:   opts.Repo,
		Path:   opts.Path,
		Ref:    opts.Ref,
		TTL:    opts.TTL,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Roster: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "editors" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
