package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

func Default() Configs {
	return Configs{
		Env: "local",
		ApiServer: APIServerConfigs{
			Host:         "0.0.0.0",
			Port:         "8080",
			MaxLimit:     50,
			DefaultLimit: 1,
		},
		Auth: AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Redis: RedisConfigs{
			Addr:                "localhost:6379",
			NotificationChannel: "notifications",
		},
		Analysis: AnalysisConfigs{
			Workers:        4,
			QueueSize:      64,
			MinProcessTime: 500 * time.Millisecond,
			MaxProcessTime: 3 * time.Second,
		},
	}
}

// Load returns the default configurations overridden by the toml file at path
// (if any) and by a few environment variables.
func Load(path string) (Configs, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if env := os.Getenv("ENV"); env != "" {
		cfg.Env = env
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.ApiServer.Port = port
	}

	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		cfg.Auth.TokenSecret = secret
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}

	if dsn := os.Getenv("MYSQL_HOST"); dsn != "" {
		cfg.Database = DatabaseConfigs{
			Host:     dsn,
			Port:     os.Getenv("MYSQL_PORT"),
			Database: os.Getenv("MYSQL_DATABASE"),
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_PASSWORD"),
		}
	}

	return cfg, nil
}
