package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  name: Alerta Teste\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Site.Name != "Alerta Teste" {
		t.Errorf("site name = %q, want %q", cfg.Site.Name, "Alerta Teste")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "alerta.db" {
		t.Errorf("default path = %q, want alerta.db", cfg.Database.Path)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Site.Name == "" {
		t.Error("site name default should not be empty")
	}
	if cfg.Site.EmergencyLine == "" {
		t.Error("emergency line default should not be empty")
	}
	if cfg.Notify.DigestCron != "0 7 * * *" {
		t.Errorf("digest cron = %q, want %q", cfg.Notify.DigestCron, "0 7 * * *")
	}
}

func TestParse_InvalidDriver(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: mongo\n"))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "driver") {
		t.Errorf("error = %q, want to mention driver", err.Error())
	}
}

func TestParse_MySQLRequiresUser(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: mysql\n"))
	if err == nil {
		t.Fatal("expected error for mysql without user")
	}
	if !strings.Contains(err.Error(), "database.user") {
		t.Errorf("error = %q, want to mention database.user", err.Error())
	}
}

func TestParse_MySQLWithUser(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  driver: mysql\n  user: alerta\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("default host = %q, want 127.0.0.1", cfg.Database.Host)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("default port = %d, want 3306", cfg.Database.Port)
	}
}

func TestParse_NotifyPairing(t *testing.T) {
	_, err := Parse([]byte("notify:\n  slack_token: xoxb-1\n"))
	if err == nil {
		t.Fatal("expected error for slack token without channel")
	}

	_, err = Parse([]byte("notify:\n  discord_channel: '123'\n"))
	if err == nil {
		t.Fatal("expected error for discord channel without token")
	}

	cfg, err := Parse([]byte("notify:\n  slack_token: xoxb-1\n  slack_channel: C123\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Notify.SlackChannel != "C123" {
		t.Errorf("slack channel = %q, want C123", cfg.Notify.SlackChannel)
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte(":::not yaml"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerta.yaml")
	content := "server:\n  port: 9090\nsite:\n  medical_line: '119'\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Site.MedicalLine != "119" {
		t.Errorf("medical line = %q, want 119", cfg.Site.MedicalLine)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
}
