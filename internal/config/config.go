// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Pipeline struct {
		RawDir       string `yaml:"raw_dir"`
		Workers      int    `yaml:"workers"`
		SaveToDB     bool   `yaml:"save_to_db"`
		WatchSeconds int    `yaml:"watch_seconds"` // 0 disables the watcher
	} `yaml:"pipeline"`

	Vocab struct {
		ExtraSkills    []string          `yaml:"extra_skills"`
		CountryAliases map[string]string `yaml:"country_aliases"`
	} `yaml:"vocab"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
