package config

import (
	"testing"

	apperrors "goprep/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TrainOut != "train.csv" {
		t.Errorf("TrainOut = %q, want train.csv", cfg.TrainOut)
	}
	if cfg.Seed != 42 || cfg.TestRatio != 0.2 || cfg.KNN != 3 || cfg.SMOTENears != 5 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GOPREP_INPUT", "data.csv")
	t.Setenv("GOPREP_SEED", "7")
	t.Setenv("GOPREP_TEST_RATIO", "0.3")
	t.Setenv("GOPREP_KNN_NEIGHBORS", "bogus") // unparseable falls back

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input != "data.csv" || cfg.Seed != 7 || cfg.TestRatio != 0.3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.KNN != 3 {
		t.Errorf("KNN = %d, want default 3 for unparseable value", cfg.KNN)
	}
}

func TestValidateRejectsBadRatio(t *testing.T) {
	t.Setenv("GOPREP_TEST_RATIO", "1.5")
	_, err := Load()
	if apperrors.GetCode(err) != apperrors.CodeConfigInvalid {
		t.Errorf("code = %s, want %s", apperrors.GetCode(err), apperrors.CodeConfigInvalid)
	}
}
