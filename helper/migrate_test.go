package helper_test

import (
	"net/url"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/config"
	"studiodesk/helper"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Username = "studio"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "studiodesk"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	dsn, err := url.Parse(helper.ConnectionString(cfg))
	require.NoError(t, err)

	password, _ := dsn.User.Password()

	assert.Equal(t, "postgres", dsn.Scheme)
	assert.Equal(t, "db:5432", dsn.Host)
	assert.Equal(t, "/test_studiodesk", dsn.Path)
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "disable", dsn.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", dsn.Query().Get("x-migrations-table"))
}

func TestInvoiceSchema(t *testing.T) {
	raw, err := os.ReadFile("../migrations/postgres/000004_create_invoices.up.sql")
	require.NoError(t, err)

	schema := string(raw)

	// amounts keep whatever scale the API accepted
	assert.NotRegexp(t, regexp.MustCompile(`NUMERIC\s*\(`), schema)
	assert.Regexp(t, regexp.MustCompile(`unit_price\s+NUMERIC NOT NULL`), schema)
	assert.Contains(t, schema, "REFERENCES main.invoices (invoice_id) ON DELETE CASCADE")
}
