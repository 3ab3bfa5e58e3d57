package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"ballotgate/audit"
	"ballotgate/blobstore"
	"ballotgate/cliparse"
	"ballotgate/coordinator"
	"ballotgate/eligibility"
	"ballotgate/notify"
	"ballotgate/router"
	"ballotgate/session"
	"ballotgate/store"
	"ballotgate/timegate"
)

func main() {
	// Load .env if present; real env wins
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	gate, err := timegate.New(cfg.WindowOpen, cfg.WindowClose)
	if err != nil {
		slog.Error("invalid voting window", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema
	if err := blobstore.EnsureSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")
	blobs := blobstore.NewSQL(dbConn)

	// Election documents
	roster := store.NewRosterStore(blobs, cfg.RosterKey, cfg.StoreTimeout)
	tally := store.NewTallyStore(blobs, cfg.TallyKey, cfg.Choices, cfg.StoreTimeout)
	registry := session.NewRegistry(cfg.SessionTTL)

	// Eligibility: everyone when no CSV is configured
	var eligible eligibility.Checker = eligibility.All{}
	if cfg.EligibilityFile != "" {
		list, err := eligibility.LoadCSV(cfg.EligibilityFile)
		if err != nil {
			slog.Error("eligibility list failed to load", "path", cfg.EligibilityFile, "error", err)
			os.Exit(1)
		}
		slog.Info("eligibility list loaded", "names", list.Len())
		eligible = list
	}

	// Mail relay: log-only when no SMTP host is configured
	var mail notify.Sender = notify.LogSender{}
	if cfg.SMTPHost != "" {
		mail = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}

	// Audit trail
	var sink audit.Sink = audit.Discard{}
	if cfg.AuditLogPath != "" {
		fileSink, err := audit.NewFileSink(cfg.AuditLogPath)
		if err != nil {
			slog.Error("audit log failed to open", "path", cfg.AuditLogPath, "error", err)
			os.Exit(1)
		}
		defer fileSink.Close()
		sink = fileSink
	}

	coord := coordinator.New(roster, tally, registry, gate, eligible, mail, sink,
		coordinator.Config{
			Choices:      cfg.Choices,
			SecretSalt:   cfg.SecretSalt,
			EmailDomain:  cfg.EmailDomain,
			AdminEmail:   cfg.AdminEmail,
			MaxAttempts:  cfg.MaxAttempts,
			RetryBackoff: cfg.RetryBackoff,
		})

	// Expiry is lazy on access; sweep periodically so abandoned sessions
	// don't pile up between logins.
	go func() {
		for range time.Tick(cfg.SessionTTL) {
			if n := registry.Sweep(); n > 0 {
				slog.Info("expired sessions swept", "count", n)
			}
		}
	}()

	// Create router
	mux := router.NewRouter(coord, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "window", gate.Status(time.Now()))
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
