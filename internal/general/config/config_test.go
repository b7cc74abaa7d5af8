package config

import (
	"strings"
	"testing"
)

func TestParseYAML(t *testing.T) {
	in := `# back-office config
database:
  host: db.internal
  port: 5433
  user: fleet
  password: "s3cret"
  database: fleet_office

rabbitmq:
  host: mq.internal
  port: 5672
  user: fleet
  password: 'mq-pass'

services:
  settlement_service: 3100

settlement:
  rate_per_km: 3.5
  diesel_rate: 92

jwt:
  secret_key: "super-secret"
`

	var cfg Config
	if err := parseYAML(strings.NewReader(in), &cfg); err != nil {
		t.Fatalf("parseYAML() error: %v", err)
	}

	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("database = %s:%d, want db.internal:5433", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("database.password = %q, quotes should be stripped", cfg.Database.Password)
	}
	if cfg.RabbitMQ.Password != "mq-pass" {
		t.Errorf("rabbitmq.password = %q, quotes should be stripped", cfg.RabbitMQ.Password)
	}
	if cfg.Services.SettlementServicePort != 3100 {
		t.Errorf("services.settlement_service = %d, want 3100", cfg.Services.SettlementServicePort)
	}
	if cfg.Settlement.RatePerKM != 3.5 || cfg.Settlement.DieselRate != 92 {
		t.Errorf("settlement rates = %v/%v, want 3.5/92", cfg.Settlement.RatePerKM, cfg.Settlement.DieselRate)
	}
	if cfg.JWT.SecretKey != "super-secret" {
		t.Errorf("jwt.secret_key = %q", cfg.JWT.SecretKey)
	}
}

func TestParseYAMLRejectsUnknownKeys(t *testing.T) {
	var cfg Config
	err := parseYAML(strings.NewReader("database:\n  hostname: x\n"), &cfg)
	if err == nil {
		t.Fatal("expected error for unknown key in database section")
	}
}

func TestParseYAMLRejectsDuplicateSections(t *testing.T) {
	var cfg Config
	err := parseYAML(strings.NewReader("jwt:\n  secret_key: a\njwt:\n  secret_key: b\n"), &cfg)
	if err == nil {
		t.Fatal("expected error for duplicate section")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database defaults = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Services.SettlementServicePort != 3000 {
		t.Errorf("settlement_service default = %d, want 3000", cfg.Services.SettlementServicePort)
	}
	if cfg.Settlement.RatePerKM != 3 || cfg.Settlement.DieselRate != 86 {
		t.Errorf("rate defaults = %v/%v, want 3/86", cfg.Settlement.RatePerKM, cfg.Settlement.DieselRate)
	}
	if cfg.JWT.SecretKey == "" {
		t.Error("jwt secret default should be generated, not empty")
	}
}
