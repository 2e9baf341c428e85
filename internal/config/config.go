package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=card_bank_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultIssuerIIN = "400000"

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	StoreBackend  string
	IssuerIIN     string
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if backend == "" {
		backend = StoreBackendPostgres
	}
	if backend != StoreBackendPostgres && backend != StoreBackendMemory {
		return Config{}, fmt.Errorf("STORE_BACKEND must be %q or %q", StoreBackendPostgres, StoreBackendMemory)
	}

	iin := strings.TrimSpace(os.Getenv("ISSUER_IIN"))
	if iin == "" {
		iin = defaultIssuerIIN
	}
	if len(iin) != 6 || !digitsOnly(iin) {
		return Config{}, fmt.Errorf("ISSUER_IIN must be exactly 6 digits")
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = filepath.Join("migrations")
	}

	return Config{
		DatabaseDSN:   normalizeConnectionString(conn),
		MigrationsDir: migrationsDir,
		StoreBackend:  backend,
		IssuerIIN:     iin,
	}, nil
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
