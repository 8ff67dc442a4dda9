package config

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvMailto, "")
	t.Setenv(EnvWorkers, "")

	cfg := FromEnv()
	if cfg.Mailto != "" {
		t.Errorf("Mailto = %q, want empty", cfg.Mailto)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvMailto, "someone@example.org")
	t.Setenv(EnvWorkers, "12")

	cfg := FromEnv()
	if cfg.Mailto != "someone@example.org" {
		t.Errorf("Mailto = %q", cfg.Mailto)
	}
	if cfg.Workers != 12 {
		t.Errorf("Workers = %d, want 12", cfg.Workers)
	}
}

func TestFromEnv_InvalidWorkers(t *testing.T) {
	for _, v := range []string{"zero", "-3", "0"} {
		t.Setenv(EnvWorkers, v)
		if cfg := FromEnv(); cfg.Workers != DefaultWorkers {
			t.Errorf("Workers with %q = %d, want default %d", v, cfg.Workers, DefaultWorkers)
		}
	}
}
