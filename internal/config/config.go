package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds everything the printer service needs at startup.
type Configuration struct {
	Address            string `env:"ADDRESS" envDefault:":3001"`
	DataDir            string `env:"DATA_DIR" envDefault:"umsatzlisten"`         // per-date sales log files
	CounterFile        string `env:"COUNTER_FILE" envDefault:"orderCounter.json"`
	PrinterDevice      string `env:"PRINTER_DEVICE" envDefault:"/dev/usb/lp0"`
	CORSOrigins        string `env:"CORS_ORIGINS" envDefault:"*"`
	RateLimit          int    `env:"RATE_LIMIT" envDefault:"5"` // requests per second per client
	CondimentAllowlist string `env:"CONDIMENT_ALLOWLIST" envDefault:""`
}

// New reads an optional .env file and then the process environment.
func New() (*Configuration, error) {
	_ = godotenv.Load()

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}
	return cfg, nil
}

// Allowlist returns the configured condiment allow-list as a slice.
// Empty configuration means no restriction.
func (c *Configuration) Allowlist() []string {
	if strings.TrimSpace(c.CondimentAllowlist) == "" {
		return nil
	}
	parts := strings.Split(c.CondimentAllowlist, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Origins splits the CORS origin list.
func (c *Configuration) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
