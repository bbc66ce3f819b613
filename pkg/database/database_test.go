package database

import (
	"strings"
	"testing"
)

func TestConnectionString(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "htfs",
		Password: "secret",
		Database: "portfolio",
		SSLMode:  "disable",
	}
	got := cfg.ConnectionString()
	want := "host=localhost port=5432 user=htfs password=secret dbname=portfolio sslmode=disable"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

func TestConnectionString_Defaults(t *testing.T) {
	cfg := &Config{Host: "db", User: "u", Password: "p", Database: "d"}
	got := cfg.ConnectionString()
	if !strings.Contains(got, "port=5432") {
		t.Errorf("missing default port: %q", got)
	}
	if !strings.Contains(got, "sslmode=disable") {
		t.Errorf("missing default sslmode: %q", got)
	}
}
