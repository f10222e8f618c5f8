package config

import (
	"fmt"
	"net"
)

// DBConfig contains the PostgreSQL export-history store configuration.
type DBConfig struct {
	// HistoryEnabled turns on local recording of submitted exports.
	HistoryEnabled bool   `env:"HISTORY_ENABLED" envDefault:"false"`
	Host           string `env:"HOST"            envDefault:"localhost"`
	Port           int    `env:"PORT"            envDefault:"5432"`
	User           string `env:"USER"            envDefault:"exportctl"`
	Password       string `env:"PASSWORD"        envDefault:"exportctl"`
	Name           string `env:"NAME"            envDefault:"exportctl"`
	SSLMode        string `env:"SSL_MODE"        envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}

// DSN builds the connection string for database/sql with the pgx driver.
func (c DBConfig) DSN() string {
	hostPort := net.JoinHostPort(c.Host, fmt.Sprintf("%d", c.Port))
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User, c.Password, hostPort, c.Name, c.SSLMode)
}

// RedisConfig contains the Redis carbon-cache configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
