package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Sweep SweepConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig is the single process-wide home of the signing secret. It is
// injected into the token service once at startup and never read anywhere else.
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SweepConfig controls the daily overdue-appointment sweep.
type SweepConfig struct {
	Hour   int
	Minute int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	viper.SetDefault("SWEEP_HOUR", 23)
	viper.SetDefault("SWEEP_MINUTE", 59)
	viper.SetDefault("DB_MIGRATIONS_DIR", "db/migrations")

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: viper.GetString("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Sweep: SweepConfig{
			Hour:   viper.GetInt("SWEEP_HOUR"),
			Minute: viper.GetInt("SWEEP_MINUTE"),
		},
	}

	return config, nil
}
