package postgres_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/config"
	"studiodesk/infras/postgres"
)

func TestEndpoints(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Read.Port = "5433"
	cfg.DB.Postgres.Read.Name = "studiodesk"
	cfg.DB.Postgres.Write.Host = "primary"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "studiodesk"
	cfg.DB.Postgres.Write.Timezone = "UTC"

	read := postgres.ReadEndpoint(cfg)
	write := postgres.WriteEndpoint(cfg)

	assert.Equal(t, "replica", read.Host)
	assert.Equal(t, "dev_studiodesk", read.Name)
	assert.Equal(t, "primary", write.Host)
	assert.Equal(t, "UTC", write.Timezone)
}

func TestEndpoint_DSN(t *testing.T) {
	endpoint := postgres.Endpoint{
		Host:     "db",
		Port:     "5432",
		Username: "studio",
		Password: "p@ss:w/rd",
		Name:     "studiodesk",
		SSLMode:  "require",
	}

	dsn, err := url.Parse(endpoint.DSN(url.Values{"application_name": {"sweeper"}}))
	require.NoError(t, err)

	password, _ := dsn.User.Password()

	assert.Equal(t, "postgres", dsn.Scheme)
	assert.Equal(t, "studio", dsn.User.Username())
	assert.Equal(t, "p@ss:w/rd", password)
	assert.Equal(t, "db:5432", dsn.Host)
	assert.Equal(t, "/studiodesk", dsn.Path)
	assert.Equal(t, "require", dsn.Query().Get("sslmode"))
	assert.Equal(t, "sweeper", dsn.Query().Get("application_name"))
	assert.False(t, dsn.Query().Has("timezone"))
}
