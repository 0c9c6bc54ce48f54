package module

import (
	"time"

	"eipwatch/internal/platform/config"
)

// Options holds configuration settings for the editors module
type Options struct {
	Static []string
	Owner  string
	Repo   string
	Path   string
	Ref    string
	TTL    time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_EDITORS_")
	return Options{
		Static: ef.MayCSV("STATIC", nil),
		Owner:  ef.MayString("OWNER", ""),
		Repo:   ef.MayString("REPO", ""),
		Path:   ef.MayString("ROSTER_PATH", ""),
		Ref:    ef.MayString("ROSTER_REF", ""),
		TTL:    ef.MayDuration("TTL", 15*time.Minute),
	}
}
