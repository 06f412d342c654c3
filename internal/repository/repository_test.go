package repository

import (
	"os"
	"testing"

	"bidboard/internal/config"
)

// TestDBEnv names the variable holding the URL of the DB to perform tests
// on. Tests are skipped when it is unset.
const TestDBEnv = "BIDBOARD_TEST_DB"

func TestNewRepository(t *testing.T) {
	repo := OpenTestRepo(t)
	repo.Close()
}

//// Service

func OpenTestRepo(t *testing.T) *Repository {
	conn := os.Getenv(TestDBEnv)
	if conn == "" {
		t.Skipf("%s is not set", TestDBEnv)
	}

	cfg, err := config.NewPostgresConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Conn = conn
	cfg.AutoMigrateUp = "false"
	cfg.AutoMigrateDown = "true"

	repo, err := NewRepository(nil, cfg)
	if err != nil {
		t.Fatalf("Could not open db by URL '%s': %s", cfg.Conn, err)
	}

	err = repo.MigrateDown() // clear potential leftovers
	if err != nil {
		t.Fatal(err)
	}

	err = repo.MigrateUp()
	if err != nil {
		t.Fatal(err)
	}

	return repo
}
