package module

import "eipwatch/internal/platform/config"

// Options holds configuration settings for the sweep module
type Options struct {
	Owner    string
	Repo     string
	Workers  int
	PageSize int
	DryRun   bool
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SWEEP_")
	return Options{
		Owner:    sf.MayString("OWNER", "ethereum"),
		Repo:     sf.MayString("REPO", "EIPs"),
		Workers:  sf.MayInt("WORKERS", 4),
		PageSize: sf.MayInt("PAGE_SIZE", 100),
		DryRun:   sf.MayBool("DRY_RUN", false),
	}
}
