package config

import (
	"flag"
	"os"
	"time"

	"github.com/DorLamesh/devops-web-app/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-d string   PostgreSQL DSN
//	-r string   Redis address carrying the CDC stream
//	-t string   CDC stream name
//	-g string   CDC consumer-group name
//	-b int      bcrypt work factor
//	-p string   bootstrap admin password
//	-q int      audit queue size
//	-w int      HTTP shutdown timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-t", "-g", "-b", "-p", "-q", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.CDCStream, "t", config.CDCStream, "CDC stream name")
	fs.StringVar(&config.CDCGroup, "g", config.CDCGroup, "CDC consumer group")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt work factor")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "bootstrap admin password")
	fs.IntVar(&config.AuditQueueSize, "q", config.AuditQueueSize, "audit queue size")

	shutdownTimeout := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
