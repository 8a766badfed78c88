package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DataDir     string
	DASBaseURL  string
	DASKey      string
	DASTimeout  time.Duration
	DASRPS      int
	MaxInflight int
	ExecTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, fills variables that are not already set.
func Load() Config {
	return LoadFiles(".env")
}

func LoadFiles(envFiles ...string) Config {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Warn().Err(err).Str("file", f).Msg("env file not loaded")
		}
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		DataDir:     env("DATA_DIR", "."),
		DASBaseURL:  env("DAS_BASE_URL", ""),
		DASKey:      env("DAS_API_KEY", ""),
		DASTimeout:  time.Duration(atoi("DAS_TIMEOUT_SECONDS", 20)) * time.Second,
		DASRPS:      atoi("DAS_RPS", 5),
		MaxInflight: atoi("MAX_INFLIGHT", 8),
		ExecTimeout: time.Duration(atoi("EXEC_TIMEOUT_SECONDS", 30)) * time.Second,
	}
	if c.DASBaseURL == "" {
		log.Warn().Msg("DAS_BASE_URL is empty; relative connectors will not resolve")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
