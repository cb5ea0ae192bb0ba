package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything a user
// editing config.yml by hand should hear about.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Vocab.ExtraSkills = trimList(out.Vocab.ExtraSkills)

	// ---- Validation rules ----

	if strings.TrimSpace(out.Pipeline.RawDir) == "" {
		res.addErr("pipeline.raw_dir must not be empty")
	}

	if out.Pipeline.Workers <= 0 {
		out.Pipeline.Workers = 1
	} else if out.Pipeline.Workers > 64 {
		res.addWarn("pipeline.workers is very high (%d); sqlite has a single writer anyway.", out.Pipeline.Workers)
	}

	if out.Pipeline.WatchSeconds < 0 {
		res.addErr("pipeline.watch_seconds must be >= 0 (0 disables watching)")
	} else if out.Pipeline.WatchSeconds > 0 && out.Pipeline.WatchSeconds < 5 {
		res.addWarn("pipeline.watch_seconds is very low (%d); each sweep re-reads every file.", out.Pipeline.WatchSeconds)
	}

	for alias, canonical := range out.Vocab.CountryAliases {
		if strings.TrimSpace(canonical) == "" {
			res.addErr("vocab.country_aliases[%q] maps to an empty name", alias)
		}
	}

	return out, res
}
