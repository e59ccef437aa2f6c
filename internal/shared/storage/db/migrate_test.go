package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsAreAnnotated(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	tables := map[string]bool{}
	for _, e := range entries {
		raw, err := fs.ReadFile(Migrations(), e.Name())
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		body := string(raw)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Fatalf("%s is missing goose annotations", e.Name())
		}
		for _, table := range []string{"users", "profiles", "humanizations", "documents", "contact_messages", "payment_history"} {
			if strings.Contains(body, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				tables[table] = true
			}
		}
	}
	if len(tables) != 6 {
		t.Fatalf("expected 6 tables, found %v", tables)
	}
}

func TestRunMigrationsNilDatabase(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil db to be a no-op, got %v", err)
	}
}
