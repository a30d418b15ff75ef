package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"studiodesk/config"
)

const (
	driverName = "postgres"

	sweeperMaxOpenConnection = 1
)

// Connection groups the pools the service uses. Sweeper is a separate
// single-connection pool for background maintenance so it never competes
// with request traffic for Read/Write connections.
type Connection struct {
	Read    *sqlx.DB
	Write   *sqlx.DB
	Sweeper *sqlx.DB
}

// Endpoint is one configured postgres host.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	Timezone string
}

// ReadEndpoint and WriteEndpoint apply the optional database name prefix.
func ReadEndpoint(cfg *config.Config) Endpoint {
	r := cfg.DB.Postgres.Read

	return Endpoint{r.Host, r.Port, r.Username, r.Password, cfg.DB.Postgres.Prefix + r.Name, r.SSLMode, r.Timezone}
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	w := cfg.DB.Postgres.Write

	return Endpoint{w.Host, w.Port, w.Username, w.Password, cfg.DB.Postgres.Prefix + w.Name, w.SSLMode, w.Timezone}
}

// DSN renders the endpoint as a postgres URL with escaped credentials. extra
// is merged into the query string.
func (e Endpoint) DSN(extra url.Values) string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	retry := retryPolicy{attempts: pg.MaxRetry, wait: time.Duration(pg.RetryWaitTime) * time.Second}

	return &Connection{
		Read:    open("read", ReadEndpoint(cfg), retry, pg.MaxOpenConns, pg.MaxIdleConns),
		Write:   open("write", WriteEndpoint(cfg), retry, pg.MaxOpenConns, pg.MaxIdleConns),
		Sweeper: open("sweeper", WriteEndpoint(cfg), retry, sweeperMaxOpenConnection, sweeperMaxOpenConnection),
	}
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

// open connects with retries and exits the process when the database never
// answers.
func open(role string, endpoint Endpoint, retry retryPolicy, maxOpen, maxIdle int) *sqlx.DB {
	logger := log.With().
		Str("name", role).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	for attempt := range max(retry.attempts, 1) {
		db, err := sqlx.Connect(driverName, endpoint.DSN(nil))
		if err == nil {
			logger.Info().Msg("Connected to database")

			return withPoolLimits(db, maxOpen, maxIdle)
		}

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")
		time.Sleep(retry.wait)
	}

	logger.Fatal().Msg("Could not connect to database")

	return nil
}

func withPoolLimits(db *sqlx.DB, maxOpen, maxIdle int) *sqlx.DB {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}

	if maxIdle > 0 {
		db.SetMaxIdleConns(min(maxIdle, max(maxOpen, 1)))
	}

	return db
}
