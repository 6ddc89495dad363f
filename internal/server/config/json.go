package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/DorLamesh/devops-web-app/internal/flagx"
	"github.com/DorLamesh/devops-web-app/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	RedisAddr        string         `json:"redis_addr"`
	CDCStream        string         `json:"cdc_stream"`
	CDCGroup         string         `json:"cdc_group"`
	BcryptCost       int            `json:"bcrypt_cost"`
	AdminPassword    string         `json:"admin_password"`
	AuditQueueSize   int            `json:"audit_queue_size"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config command-line
// flags. If neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.CDCStream = c.CDCStream
	config.CDCGroup = c.CDCGroup
	config.BcryptCost = c.BcryptCost
	config.AdminPassword = c.AdminPassword
	config.AuditQueueSize = c.AuditQueueSize
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
}
