// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("CHOICES", "Red,Blue")
	os.Setenv("WINDOW_OPEN", "2026-05-01T08:00:00Z")
	os.Setenv("WINDOW_CLOSE", "2026-05-01T20:00:00Z")
	os.Setenv("EMAIL_DOMAIN", "campus.edu")
	os.Setenv("SECRET_SALT", "test-salt")
	os.Setenv("ADMIN_KEY", "test-key")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if len(cfg.Choices) != 2 || cfg.Choices[0] != "Red" || cfg.Choices[1] != "Blue" {
		t.Errorf("expected choices [Red Blue], got %v", cfg.Choices)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.RosterKey != ".credentials.txt" || cfg.TallyKey != ".results.txt" {
		t.Errorf("unexpected blob keys %q %q", cfg.RosterKey, cfg.TallyKey)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("expected default TTL 15m, got %v", cfg.SessionTTL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-choices", "Alpha, Beta ,Gamma"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if len(cfg.Choices) != 3 || cfg.Choices[1] != "Beta" {
		t.Errorf("expected trimmed choices [Alpha Beta Gamma], got %v", cfg.Choices)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	cases := []struct {
		name string
		omit string
	}{
		{"no database", "DATABASE_URL"},
		{"no choices", "CHOICES"},
		{"no window open", "WINDOW_OPEN"},
		{"no window close", "WINDOW_CLOSE"},
		{"no domain", "EMAIL_DOMAIN"},
		{"no secret salt", "SECRET_SALT"},
		{"no admin key", "ADMIN_KEY"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			os.Unsetenv(tc.omit)
			defer os.Clearenv()

			if _, err := ParseFlags([]string{}); err == nil {
				t.Errorf("expected error with %s missing", tc.omit)
			}
		})
	}
}

func TestParseFlags_SingleChoiceRejected(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("CHOICES", "OnlyOne")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for a one-label ballot")
	}
}

func TestParseFlags_AdminEmailDefaultsToSMTPUser(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("SMTP_USER", "relay@campus.edu")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AdminEmail != "relay@campus.edu" {
		t.Errorf("expected admin email to default to SMTP user, got %q", cfg.AdminEmail)
	}
}
