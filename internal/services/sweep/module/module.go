// Package module implements the sweep module
package module

import (
	"net/http"

	"eipwatch/internal/core/engine"
	"eipwatch/internal/core/ruleset"
	"eipwatch/internal/modkit"
	"eipwatch/internal/modkit/httpkit"
	"eipwatch/internal/services/sweep/domain"
	"eipwatch/internal/services/sweep/service"
)

// Ports exposed by the sweep module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new sweep module
func New(deps modkit.Deps, api service.API, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("sweep"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("sweep module: expected WithPorts(sweep/domain.Ports)")
	}
	if ports.Snapshots == nil || ports.Roster == nil {
		panic("sweep module: Ports missing Snapshots or Roster")
	}
	if api == nil {
		panic("sweep module: nil API")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.Owner != "" {
		cfg.Owner = overrides.Owner
	}
	if overrides.Repo != "" {
		cfg.Repo = overrides.Repo
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.PageSize != 0 {
		cfg.PageSize = overrides.PageSize
	}
	// bool override wins (defaults false if caller didn't set)
	cfg.DryRun = overrides.DryRun

	// Shared rule set for the run
	rs, err := ruleset.Load()
	if err != nil {
		panic(err)
	}

	runner := service.New(api, ports.Snapshots, ports.Roster, engine.New(rs), service.Config{
		Owner:    cfg.Owner,
		Repo:     cfg.Repo,
		Workers:  cfg.Workers,
		PageSize: cfg.PageSize,
		DryRun:   cfg.DryRun,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "sweep" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
