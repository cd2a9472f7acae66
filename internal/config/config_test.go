//go:build unit

package config

import "testing"

func TestLoadConfig(t *testing.T) {
	t.Setenv("WIKI_STORE_DRIVER", "memory")
	t.Setenv("WIKI_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != "memory" {
		t.Errorf("expected the environment to override the driver, got %q", cfg.Store.Driver)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Log.Level)
	}
	if cfg.Store.PagesKey != "wiki_federation_data_v1" || cfg.Store.EditModeKey != "wiki_federation_editmode_v1" {
		t.Errorf("unexpected storage keys: %q, %q", cfg.Store.PagesKey, cfg.Store.EditModeKey)
	}
	if cfg.Server.Port != "8080" || !cfg.Editor.Sanitize || cfg.Session.Lifetime != 24 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
