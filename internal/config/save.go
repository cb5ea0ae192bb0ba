package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if strings.TrimSpace(cfg.Pipeline.RawDir) == "" {
		errs = append(errs, "pipeline.raw_dir is required")
	}
	if cfg.Pipeline.Workers < 0 {
		errs = append(errs, "pipeline.workers must be >= 0")
	}
	if cfg.Pipeline.WatchSeconds < 0 {
		errs = append(errs, "pipeline.watch_seconds must be >= 0")
	}
	for i, s := range cfg.Vocab.ExtraSkills {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("vocab.extra_skills[%d] cannot be empty", i))
		}
	}
	for alias, canonical := range cfg.Vocab.CountryAliases {
		if strings.TrimSpace(canonical) == "" {
			errs = append(errs, fmt.Sprintf("vocab.country_aliases[%q] cannot map to empty", alias))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n-"
		}
		out += s
	}
	return out
}
