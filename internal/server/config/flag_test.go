package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-r", "redis:6379",
			"-t", "changes", "-g", "mirror", "-b", "12", "-p", "secret",
			"-q", "64", "-w", "10",
		},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				DatabaseDSN:      "db",
				RedisAddr:        "redis:6379",
				CDCStream:        "changes",
				CDCGroup:         "mirror",
				BcryptCost:       12,
				AdminPassword:    "secret",
				AuditQueueSize:   64,
				ShutdownTimeout:  10 * time.Second,
			},
		},
		{name: "no flags keeps defaults", args: []string{"cmd"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				return c
			}(),
		},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}
			cfg.LoadDefaults()
			parseFlags(cfg)

			assert.Equal(t, tt.expected, cfg)
		})
	}
}
