package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0:8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"DEBUG"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console"`
	FlashCookie   string `env:"FLASH_COOKIE" envDefault:"bidboard_flash"`
	APIConfig
	IdentityConfig
	DevAPIConfig
}

func NewConfig() (*Config, error) {
	config := &Config{}

	err := env.Parse(config)
	if err != nil {
		err = fmt.Errorf("config.NewConfig: %w", err)
	}
	return config, err
}

// APIConfig points the frontend at the marketplace API. An empty base URL is
// accepted; requests made with it fail at the transport.
type APIConfig struct {
	BaseURL string `env:"API_BASE_URL"`
}

// IdentityConfig names the headers an authenticating proxy sets for the
// signed-in user.
type IdentityConfig struct {
	EmailHeader string `env:"IDENTITY_EMAIL_HEADER" envDefault:"X-User-Email"`
	NameHeader  string `env:"IDENTITY_NAME_HEADER" envDefault:"X-User-Name"`
	PhotoHeader string `env:"IDENTITY_PHOTO_HEADER" envDefault:"X-User-Photo"`
	StateHeader string `env:"IDENTITY_STATE_HEADER" envDefault:"X-Auth-State"`
}

type DevAPIConfig struct {
	DevAPIAddress string `env:"DEVAPI_ADDRESS" envDefault:"0.0.0.0:5000"`
	PostgresConfig
}

type PostgresConfig struct {
	Conn            string `env:"POSTGRES_CONN" envDefault:"postgres://test:test@db:5432/test?sslmode=disable"`
	AutoMigrateUp   string `env:"AUTO_MIGRATE_UP" envDefault:"true"`
	AutoMigrateDown string `env:"AUTO_MIGRATE_DOWN" envDefault:"false"`
	// Empty means the migrations embedded in the binary.
	MigrationsURL string `env:"MIGRATIONS_URL"`
}

func NewPostgresConfig() (*PostgresConfig, error) {
	config := &PostgresConfig{}

	err := env.Parse(config)
	if err != nil {
		err = fmt.Errorf("config.NewPostgresConfig: %w", err)
	}
	return config, err
}

// LoadDotEnv loads variables from the given files into the process
// environment. Missing files are skipped and already set variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", file, err)
		}
	}
	return nil
}
