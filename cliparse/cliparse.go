package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	RosterKey string
	TallyKey  string

	Choices     []string
	WindowOpen  string
	WindowClose string

	SecretSalt  string
	AdminKey    string
	SessionTTL  time.Duration
	EmailDomain string

	AdminEmail   string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	EligibilityFile string
	AuditLogPath    string

	StoreTimeout time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballotgate", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election parameters
	var choices string
	fs.StringVar(&choices, "choices", "", "Comma-separated choice labels")
	fs.StringVar(&cfg.WindowOpen, "open", "", "Voting window open instant (RFC 3339)")
	fs.StringVar(&cfg.WindowClose, "close", "", "Voting window close instant (RFC 3339)")
	fs.StringVar(&cfg.EmailDomain, "domain", "", "Institutional email domain")
	fs.StringVar(&cfg.EligibilityFile, "eligible", "", "Eligibility CSV path")
	fs.StringVar(&cfg.AuditLogPath, "audit", "", "Audit log path")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretSalt, "secret-salt", "", "Voter secret salt (prefer env)")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3640 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if choices == "" {
		choices = os.Getenv("CHOICES")
	}
	for _, c := range strings.Split(choices, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cfg.Choices = append(cfg.Choices, c)
		}
	}
	if len(cfg.Choices) < 2 {
		return Config{}, errors.New("at least two choices required (use -choices or CHOICES env)")
	}

	if cfg.WindowOpen == "" {
		cfg.WindowOpen = os.Getenv("WINDOW_OPEN")
	}
	if cfg.WindowClose == "" {
		cfg.WindowClose = os.Getenv("WINDOW_CLOSE")
	}
	if cfg.WindowOpen == "" || cfg.WindowClose == "" {
		return Config{}, errors.New("voting window required (WINDOW_OPEN and WINDOW_CLOSE, RFC 3339)")
	}

	if cfg.EmailDomain == "" {
		cfg.EmailDomain = os.Getenv("EMAIL_DOMAIN")
	}
	if cfg.EmailDomain == "" {
		return Config{}, errors.New("EMAIL_DOMAIN required")
	}

	// Secrets - MUST be provided
	if cfg.SecretSalt == "" {
		cfg.SecretSalt = os.Getenv("SECRET_SALT")
	}
	if cfg.SecretSalt == "" {
		return Config{}, errors.New("SECRET_SALT required")
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	// Mail relay; optional, credentials mail is logged when absent
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPPort = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid SMTP_PORT env variable")
		}
		cfg.SMTPPort = port
	}
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.SMTPUser
	}

	if cfg.EligibilityFile == "" {
		cfg.EligibilityFile = os.Getenv("ELIGIBILITY_FILE")
	}
	if cfg.AuditLogPath == "" {
		cfg.AuditLogPath = os.Getenv("AUDIT_LOG")
	}

	cfg.RosterKey = envOr("ROSTER_KEY", ".credentials.txt")
	cfg.TallyKey = envOr("TALLY_KEY", ".results.txt")

	cfg.SessionTTL = 15 * time.Minute
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil || minutes <= 0 {
			return Config{}, errors.New("invalid SESSION_TTL_MINUTES env variable")
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}

	cfg.StoreTimeout = 5 * time.Second
	cfg.MaxAttempts = 5
	cfg.RetryBackoff = 25 * time.Millisecond

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
