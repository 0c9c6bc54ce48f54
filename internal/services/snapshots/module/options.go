package module

import "eipwatch/internal/platform/config"

// Options holds configuration settings for the snapshots module
type Options struct {
	DailyTable string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SNAPSHOTS_")
	return Options{
		DailyTable: sf.MayString("DAILY_TABLE", "pr_attention_daily"),
	}
}
