package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GALLERYD_"

// applyEnv overlays GALLERYD_* variables, reading a .env file in the working
// directory first when one exists. Variables already set in the process win
// over the file.
func applyEnv(c *Config) error {
	_ = godotenv.Load()

	if v := getEnv("BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getEnv("USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := getEnv("COOKIE"); v != "" {
		c.Cookie = v
	}
	if v := getEnv("DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", envPrefix, err)
		}
		c.Debug = b
	}
	if v := getEnv("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		c.Timeout = d
	}
	if v := getEnv("REQUEST_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_DELAY: %w", envPrefix, err)
		}
		c.RequestDelay = d
	}
	if v := getEnv("LANGUAGES"); v != "" {
		langs, err := ParseLanguages([]string{v})
		if err != nil {
			return fmt.Errorf("%sLANGUAGES: %w", envPrefix, err)
		}
		c.RequiredLanguages = langs
	}

	return nil
}

func getEnv(key string) string {
	return os.Getenv(envPrefix + key)
}
