package config

import "testing"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Environment: "development"},
		JWT: JWTConfig{
			AccessSecret:  "your-access-secret-change-in-production",
			RefreshSecret: "your-refresh-secret-change-in-production",
		},
		Upload: UploadConfig{
			MaxBytes:     104857600,
			AllowedTypes: []string{"audio/webm", "audio/wav", "audio/mpeg"},
		},
		AI: AIConfig{TranscribeProvider: "whisper"},
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadUploadPolicy(t *testing.T) {
	cfg := defaultConfig()
	cfg.Upload.MaxBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero MaxBytes should fail validation")
	}

	cfg = defaultConfig()
	cfg.Upload.AllowedTypes = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty AllowedTypes should fail validation")
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := defaultConfig()
	cfg.AI.TranscribeProvider = "deepgram"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}

	cfg.AI.TranscribeProvider = "assemblyai"
	if err := cfg.Validate(); err != nil {
		t.Errorf("assemblyai should validate, got %v", err)
	}
}

func TestValidateRequiresRealSecretsInProduction(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Environment = "production"
	if err := cfg.Validate(); err == nil {
		t.Error("default JWT secrets should fail in production")
	}

	cfg.JWT.AccessSecret = "real-access"
	cfg.JWT.RefreshSecret = "real-refresh"
	if err := cfg.Validate(); err != nil {
		t.Errorf("real secrets should validate, got %v", err)
	}
}

func TestIsProductionIsLiteral(t *testing.T) {
	cfg := defaultConfig()

	for _, env := range []string{"development", "staging", "prod", "Production", "PRODUCTION", ""} {
		cfg.Server.Environment = env
		if cfg.IsProduction() {
			t.Errorf("IsProduction(%q) should be false", env)
		}
	}

	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction(\"production\") should be true")
	}
}

func TestIsAllowedMediaType(t *testing.T) {
	cfg := defaultConfig()

	for _, ct := range []string{"audio/webm", "audio/wav", "audio/mpeg"} {
		if !cfg.IsAllowedMediaType(ct) {
			t.Errorf("%s should be allowed", ct)
		}
	}
	for _, ct := range []string{"application/pdf", "text/plain", "audio/flac", ""} {
		if cfg.IsAllowedMediaType(ct) {
			t.Errorf("%s should not be allowed", ct)
		}
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "secret",
		Name: "meetings", SSLMode: "disable",
	}
	want := "host=db port=5432 user=app password=secret dbname=meetings sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Redis = RedisConfig{Host: "redis", Port: "6379"}
	if got := cfg.GetRedisAddr(); got != "redis:6379" {
		t.Errorf("addr = %q", got)
	}
}
