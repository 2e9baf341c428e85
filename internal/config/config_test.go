package config

import (
	"testing"
)

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=localhost;Port=5432;Database=card_bank_db;Username=postgres;Password=secret;Timeout=30;CommandTimeout=30")
	want := "host=localhost port=5432 dbname=card_bank_db user=postgres password=secret connect_timeout=30 statement_timeout=30s sslmode=disable"
	if got != want {
		t.Errorf("normalizeConnectionString = %q, want %q", got, want)
	}
}

func TestNormalizeConnectionStringKeepsSSLMode(t *testing.T) {
	got := normalizeConnectionString("Host=db;Database=cards;SSLMode=require")
	want := "host=db dbname=cards sslmode=require"
	if got != want {
		t.Errorf("normalizeConnectionString = %q, want %q", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("ISSUER_IIN", "")
	t.Setenv("MIGRATIONS_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.IssuerIIN != "400000" {
		t.Errorf("IssuerIIN = %q, want 400000", cfg.IssuerIIN)
	}
	if cfg.StoreBackend != StoreBackendPostgres {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreBackendPostgres)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Errorf("MigrationsDir = %q, want migrations", cfg.MigrationsDir)
	}
}

func TestLoadRejectsBadIIN(t *testing.T) {
	t.Setenv("ISSUER_IIN", "40000a")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric ISSUER_IIN")
	}

	t.Setenv("ISSUER_IIN", "4000000")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a 7-digit ISSUER_IIN")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unknown STORE_BACKEND")
	}
}
