package repository_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"artist-booking/config"
	"artist-booking/internal/database"
	"artist-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testDB is only set when TEST_DB_HOST points at a disposable Postgres.
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		log.Println("TEST_DB_HOST not set, skipping repository integration tests")
		os.Exit(0)
	}

	cfg := config.LoadTestConfig()
	cfg.Database.Host = host
	if port := os.Getenv("TEST_DB_PORT"); port != "" {
		cfg.Database.Port = port
	}

	ctx := context.Background()
	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}

	var err error
	testDB, err = database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	code := m.Run()
	testDB.Close()

	os.Exit(code)
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

func setupTestWithTruncate(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(),
		"TRUNCATE admin_offers, booking_offers, booking_requests, availabilities, artist_disciplines, artists RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

func setupTestWithTransaction(t *testing.T) (pgx.Tx, func()) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	return tx, func() {
		_ = tx.Rollback(ctx)
	}
}

func createTestArtist(t *testing.T, name string, status model.ApprovalStatus, disciplines ...string) int {
	t.Helper()
	ctx := context.Background()

	var id int
	err := testDB.QueryRow(ctx, `
		INSERT INTO artists (name, email, address, approval_status)
		VALUES ($1, $2, 'Hauptstr. 1, 10115 Berlin', $3)
		RETURNING id
	`, name, fmt.Sprintf("%s@example.com", name), status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test artist: %v", err)
	}

	for _, d := range disciplines {
		_, err := testDB.Exec(ctx, `
			INSERT INTO artist_disciplines (artist_id, discipline_id)
			SELECT $1, id FROM disciplines WHERE name = $2
		`, id, d)
		if err != nil {
			t.Fatalf("Failed to attach discipline: %v", err)
		}
	}

	return id
}

func createTestSlot(t *testing.T, artistID int, date time.Time) int {
	t.Helper()

	var id int
	err := testDB.QueryRow(context.Background(),
		`INSERT INTO availabilities (artist_id, date) VALUES ($1, $2::date) RETURNING id`,
		artistID, date,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create slot: %v", err)
	}
	return id
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertRowCount(t *testing.T, table string, expected int) {
	t.Helper()

	var count int
	if err := testDB.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	if count != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, count)
	}
}
