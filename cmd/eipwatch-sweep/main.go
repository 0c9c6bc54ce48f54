package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"eipwatch/internal/modkit"
	"eipwatch/internal/modkit/module"
	"eipwatch/internal/platform/config"
	"eipwatch/internal/platform/logger"
	"eipwatch/internal/platform/store"

	gh "eipwatch/internal/adapters/ingest/github"

	editorsmod "eipwatch/internal/services/editors/module"
	snapsmod "eipwatch/internal/services/snapshots/module"
	sweepdom "eipwatch/internal/services/sweep/domain"
	sweepmod "eipwatch/internal/services/sweep/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	ghCfg := root.Prefix("SERVICE_GITHUB_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "eipwatch",
			ClientTag:  "sweep",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		owner   = flag.String("owner", "", "repo owner, e.g. ethereum")
		repo    = flag.String("repo", "", "repo name, e.g. EIPs")
		workers = flag.Int("workers", 4, "concurrency (>=1)")
		page    = flag.Int("page", 100, "page size (rows)")
		dryRun  = flag.Bool("dry-run", false, "decide but do not write snapshots")
	)
	flag.Parse()

	// Pass CLI flags into CORE_SWEEP_* so the module can read its own config
	mustSetEnv("CORE_SWEEP_OWNER", *owner)
	mustSetEnv("CORE_SWEEP_REPO", *repo)
	mustSetEnv("CORE_SWEEP_WORKERS", strconv.Itoa(*workers))
	mustSetEnv("CORE_SWEEP_PAGE_SIZE", strconv.Itoa(*page))
	mustSetEnv("CORE_SWEEP_DRY_RUN", map[bool]string{true: "1", false: "0"}[*dryRun])

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	ghc := gh.NewClient(gh.Options{
		TokensCSV: ghCfg.MayString("TOKENS", ""),
	})

	// Build dependency modules first
	sn := snapsmod.New(deps)
	ed := editorsmod.New(deps, ghc)

	// Build the sweep module with ports injected from deps modules
	sm := sweepmod.New(
		deps,
		ghc,
		sweepmod.Options{
			Owner:    *owner,
			Repo:     *repo,
			Workers:  *workers,
			PageSize: *page,
			DryRun:   *dryRun,
		},
		modkit.WithPorts(sweepdom.Ports{
			Snapshots: module.MustPortsOf[snapsmod.Ports](sn).Writer,
			Roster:    module.MustPortsOf[editorsmod.Ports](ed).Roster,
		}),
	)

	// Register ports
	module.Register(sn.Name(), sn.Ports())
	module.Register(ed.Name(), ed.Ports())
	module.Register(sm.Name(), sm.Ports())

	// Kick the runner
	ports := sm.Ports().(sweepmod.Ports)
	sum, err := ports.Runner.RunOnce(context.Background())
	if err != nil {
		l.Fatal().Err(err).Msg("sweep failed")
	}
	l.Info().
		Str("run_id", sum.RunID).
		Str("repo", sum.Repo).
		Int("open", sum.Open).
		Int("decided", sum.Decided).
		Int("failed", sum.Failed).
		Int64("pruned", sum.Pruned).
		Msg("sweep complete")
}
