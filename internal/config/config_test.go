package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndSaveRoundTrip(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38472
	cfg.Pipeline.RawDir = "data/raw"
	cfg.Pipeline.Workers = 4
	cfg.Pipeline.SaveToDB = true
	cfg.Vocab.ExtraSkills = []string{"Terraform"}

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.App.Port != 38472 || got.Pipeline.RawDir != "data/raw" || !got.Pipeline.SaveToDB {
		t.Errorf("round trip: %+v", got)
	}
	if len(got.Vocab.ExtraSkills) != 1 || got.Vocab.ExtraSkills[0] != "Terraform" {
		t.Errorf("vocab: %+v", got.Vocab)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	var cfg Config
	cfg.App.Port = 0
	cfg.Pipeline.RawDir = ""

	if err := Validate(cfg); err == nil {
		t.Error("want validation error")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38472
	cfg.Pipeline.RawDir = "data/raw"
	cfg.Pipeline.Workers = 0
	cfg.Vocab.ExtraSkills = []string{" Terraform ", "", "terraform", "Pulumi"}

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("errors: %v", res.Errors)
	}
	if out.Pipeline.Workers != 1 {
		t.Errorf("Workers = %d, want defaulted 1", out.Pipeline.Workers)
	}
	if len(out.Vocab.ExtraSkills) != 2 {
		t.Errorf("ExtraSkills = %v, want trimmed+deduped 2", out.Vocab.ExtraSkills)
	}
}

func TestOverlayVocab(t *testing.T) {
	var cfg Config
	cfg.Vocab.ExtraSkills = []string{"Terraform"}

	path := filepath.Join(t.TempDir(), "vocab.yml")
	body := "vocab:\n  extra_skills: [Pulumi]\n  country_aliases:\n    deutschland: Germany\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := OverlayVocab(&cfg, path); err != nil {
		t.Fatalf("OverlayVocab: %v", err)
	}
	if len(cfg.Vocab.ExtraSkills) != 2 {
		t.Errorf("ExtraSkills = %v", cfg.Vocab.ExtraSkills)
	}
	if cfg.Vocab.CountryAliases["deutschland"] != "Germany" {
		t.Errorf("CountryAliases = %v", cfg.Vocab.CountryAliases)
	}

	// missing overlay file is not an error
	if err := OverlayVocab(&cfg, filepath.Join(t.TempDir(), "nope.yml")); err != nil {
		t.Errorf("missing overlay: %v", err)
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	def := filepath.Join(t.TempDir(), "default.yml")
	if err := os.WriteFile(def, []byte("app:\n  port: 38472\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	if userPath != filepath.Join(dataDir, "config.yml") {
		t.Errorf("userPath = %q", userPath)
	}

	// second call must not clobber the user copy
	if err := os.WriteFile(userPath, []byte("app:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(again)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 9999 {
		t.Errorf("user config was overwritten: %+v", cfg.App)
	}
}
