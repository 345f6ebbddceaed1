package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string // "json" or "console"
	ClientOrigin  string
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	Production    bool
	DBPath        string // empty disables the round journal
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "5175")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = getenv("LOG_FORMAT", "json")
	c.ClientOrigin = getenv("CLIENT_ORIGIN", "http://localhost:5173")
	c.SessionSecret = getenv("SESSION_SECRET", "dev_secret_change_me")
	c.SessionTTL = time.Duration(getenvInt("SESSION_TTL_HOURS", 24)) * time.Hour
	c.CookieName = getenv("COOKIE_NAME", "planet_session")
	c.Production = os.Getenv("NODE_ENV") == "production"
	c.DBPath = dbPath()
	return c
}

// dbPath distinguishes an unset DB_PATH (use the default file) from an
// explicitly empty one (journal off).
func dbPath() string {
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		return v
	}
	return "./data/planets.db"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
