package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("expected driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("expected top_k=3, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.GroundedConfidence != 0.85 {
		t.Errorf("expected grounded_confidence=0.85, got %v", cfg.Retrieval.GroundedConfidence)
	}
	if len(cfg.Scope.Domains) != 1 || cfg.Scope.Domains[0].Category != "people" {
		t.Errorf("expected default people domain, got %+v", cfg.Scope.Domains)
	}
	if len(cfg.Records.Required) == 0 || len(cfg.Records.Searchable) == 0 {
		t.Errorf("expected default record schema, got %+v", cfg.Records)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "postgres"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown database driver")
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "redis"
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}
}

func TestValidate_GeneratorProviderMustExist(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Generator.Provider = "openai"
	cfg.Generation.Providers = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for generator provider without providers entry")
	}

	cfg.Generation.Providers = map[string]ProviderConfig{
		"openai": {APIKey: "test-key"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with matching provider: %v", err)
	}
}

func TestValidate_DomainWithoutKeywords(t *testing.T) {
	cfg := validConfig()
	cfg.Scope.Domains = []DomainConfig{{Category: "people"}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for domain without keywords")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ASKDEX_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${ASKDEX_TEST_KEY}\nurl: ${ASKDEX_MISSING:-http://localhost}")))
	want := "api_key: secret\nurl: http://localhost"
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}
