package migrate

import (
	"net/url"
	"testing"

	"github.com/gaze-network/tzbot/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneURLWithQuery(t *testing.T) {
	u, err := url.Parse("postgres://bot@localhost:5432/tzbot?sslmode=disable")
	require.NoError(t, err)

	clone := cloneURLWithQuery(u, url.Values{"x-migrations-table": {tipbotMigrationTable}})
	assert.Equal(t, "sslmode=disable&x-migrations-table=tipbot_schema_migrations", clone.RawQuery)
	assert.Equal(t, "sslmode=disable", u.RawQuery, "original url must not change")
}

func TestNewMigrateInvalid(t *testing.T) {
	_, err := newMigrate("", tipbotMigrationSource)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	_, err = newMigrate("mysql://localhost/tzbot", tipbotMigrationSource)
	assert.ErrorIs(t, err, errs.Unsupported)
}

func TestParseArgs(t *testing.T) {
	var args migrateCmdArgs
	require.NoError(t, args.ParseArgs([]string{"3"}))
	assert.Equal(t, 3, args.N)

	assert.ErrorIs(t, (&migrateCmdArgs{}).ParseArgs([]string{"-1"}), errs.InvalidArgument)
	assert.ErrorIs(t, (&migrateCmdArgs{}).ParseArgs([]string{"x"}), errs.InvalidArgument)
}
