// Package config holds server settings, CLI file settings and logging.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string // empty: console only
	MaxBodyKB    int
	AllowFile    string // server-wide allow list, watched for edits
	StrictMode   bool
}

// Load reads the environment, falling back to defaults.
func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8080"))
	kb, _ := strconv.Atoi(getenv("MAX_BODY_KB", "1024"))
	strict, _ := strconv.ParseBool(getenv("KANACHECK_STRICT", "false"))
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: strings.Split(getenv("ALLOW_ORIGINS", "*"), ","),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      os.Getenv("LOG_FILE"),
		MaxBodyKB:    kb,
		AllowFile:    os.Getenv("KANACHECK_ALLOW_FILE"),
		StrictMode:   strict,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
