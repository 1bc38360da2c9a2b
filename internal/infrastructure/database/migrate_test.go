package database

import (
	"io/fs"
	"net/url"
	"testing"

	"clinic-booking/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURLEscapesCredentials(t *testing.T) {
	raw := MigrationURL(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "clinic",
		Password: "p@ss:word/1",
		Name:     "clinic_booking",
		SSLMode:  "disable",
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "pgx5", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/clinic_booking", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))

	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss:word/1", password)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.Len(t, ups, 3)
	assert.Len(t, downs, len(ups))
}
