package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL        string
	SupabaseKey        string
	SupabaseProjectRef string
	Port               string
}

func LoadConfig() (*Config, error) {
	// .env опционален: в продакшене переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseKey:        os.Getenv("SUPABASE_KEY"),
		SupabaseProjectRef: os.Getenv("SUPABASE_PROJECT_REF"),
		Port:               os.Getenv("PORT"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры подключения к Supabase
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is not set")
	}
	if c.SupabaseKey == "" {
		return fmt.Errorf("SUPABASE_KEY is not set")
	}
	if c.SupabaseProjectRef == "" {
		return fmt.Errorf("SUPABASE_PROJECT_REF is not set")
	}
	return nil
}
