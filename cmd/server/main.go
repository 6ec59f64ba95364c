package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "coachdash/internal/adapters/email"
	web "coachdash/internal/adapters/http"
	"coachdash/internal/adapters/storage"
	activityStore "coachdash/internal/adapters/storage/activity"
	coachStore "coachdash/internal/adapters/storage/coach"
	observationStore "coachdash/internal/adapters/storage/observation"
	pdpStore "coachdash/internal/adapters/storage/pdp"
	playerStore "coachdash/internal/adapters/storage/player"
	"coachdash/internal/application/orchestrators"
	"coachdash/internal/metrics"
	"coachdash/pkg/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	production := os.Getenv("COACHDASH_ENV") == "production"
	logging.Setup(production)

	// WAL mode, foreign keys, and a busy timeout keep concurrent request
	// handling from tripping over sqlite's single writer.
	dbPath := envOrDefault("COACHDASH_DB", "coachdash.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Query instrumentation feeds the prometheus histogram.
	collector := metrics.NewCollector()
	timedDB := storage.NewTimedDB(db, collector)

	cStore := coachStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		CoachStore:       cStore,
		PlayerStore:      playerStore.NewSQLiteStore(timedDB),
		ObservationStore: observationStore.NewSQLiteStore(timedDB),
		PlanStore:        pdpStore.NewSQLiteStore(timedDB),
		ActivityStore:    activityStore.NewSQLiteStore(timedDB),
	}

	// Configure email sender for coach invites
	var sender emailPkg.Sender
	emailFrom := envOrDefault("COACHDASH_EMAIL_FROM", "Coach Dashboard <noreply@example.club>")
	if resendKey := os.Getenv("COACHDASH_RESEND_KEY"); resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if production {
			log.Println("WARNING: COACHDASH_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set COACHDASH_RESEND_KEY for real delivery)")
		}
	}

	// Seed the first admin account on an empty coach table
	adminEmail := envOrDefault("COACHDASH_ADMIN_EMAIL", "admin@example.club")
	adminPassword := envOrDefault("COACHDASH_ADMIN_PASSWORD", "change-me-before-prod")
	seedDeps := orchestrators.CreateCoachDeps{
		CoachStore: cStore,
		EmailFrom:  emailFrom,
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	mux := web.NewMux(stores, web.Options{
		Metrics:   collector,
		Sender:    sender,
		EmailFrom: emailFrom,
	})

	addr := envOrDefault("COACHDASH_ADDR", ":8080")
	log.Printf("coachdash %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("COACHDASH_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
