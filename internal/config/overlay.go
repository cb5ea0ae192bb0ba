// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type VocabFile struct {
	Vocab struct {
		ExtraSkills    []string          `yaml:"extra_skills"`
		CountryAliases map[string]string `yaml:"country_aliases"`
	} `yaml:"vocab"`
}

// OverlayVocab merges an optional vocab.yml on top of the main config, so
// vocabulary extensions survive config.yml rewrites from the API.
func OverlayVocab(cfg *Config, vocabPath string) error {
	b, err := os.ReadFile(vocabPath)
	if err != nil {
		// Missing vocab file should not kill startup
		return nil
	}

	var vf VocabFile
	if err := yaml.Unmarshal(b, &vf); err != nil {
		return err
	}

	if len(vf.Vocab.ExtraSkills) > 0 {
		cfg.Vocab.ExtraSkills = append(cfg.Vocab.ExtraSkills, vf.Vocab.ExtraSkills...)
	}
	if len(vf.Vocab.CountryAliases) > 0 {
		if cfg.Vocab.CountryAliases == nil {
			cfg.Vocab.CountryAliases = make(map[string]string)
		}
		for k, v := range vf.Vocab.CountryAliases {
			cfg.Vocab.CountryAliases[k] = v
		}
	}
	return nil
}
