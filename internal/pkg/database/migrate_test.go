package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	cases := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/db?sslmode=disable", "pgx5://u:p@localhost:5432/db?sslmode=disable"},
		{"postgresql://u:p@db/punctoo", "pgx5://u:p@db/punctoo"},
		{"pgx5://u:p@db/punctoo", "pgx5://u:p@db/punctoo"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, migrateURL(c.dsn))
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := embeddedMigrations.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}
