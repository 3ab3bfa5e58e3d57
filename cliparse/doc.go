/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3640)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - Choices: ballot labels (required, at least two)
  - WindowOpen, WindowClose: voting window instants in RFC 3339 (required)
  - EmailDomain: institutional mail domain for derived identities (required)
  - SecretSalt: secret for voter password derivation (required)
  - AdminKey: key for the admin endpoints (required)
  - SessionTTL: idle session lifetime (default: 15 minutes)
  - RosterKey, TallyKey: blob keys for the two election documents
  - SMTPHost/Port/User/Password, AdminEmail: mail relay, optional
  - EligibilityFile: CSV of eligible names, optional (everyone eligible when absent)
  - AuditLogPath: audit trail file, optional (discarded when absent)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CHOICES       → -choices
	WINDOW_OPEN   → -open
	WINDOW_CLOSE  → -close
	EMAIL_DOMAIN  → -domain
	SECRET_SALT   → -secret-salt
	ADMIN_KEY     → -admin-key

CLI flags take precedence over environment variables. Mail, eligibility,
audit, and tuning settings are environment-only.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - CHOICES must name at least two labels
  - WINDOW_OPEN and WINDOW_CLOSE must be provided
  - EMAIL_DOMAIN, SECRET_SALT, and ADMIN_KEY must be provided
*/
package cliparse
