package migrate

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	tipbotMigrationSource = "modules/tipbot/database/postgresql/migrations"
	tipbotMigrationTable  = "tipbot_schema_migrations"
)

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

type migrateCmdOptions struct {
	DatabaseURL string
	Source      string
}

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

// newMigrate opens the tip ledger migrations of source against databaseURL.
func newMigrate(databaseURL string, source string) (*migrate.Migrate, error) {
	if databaseURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "--database is required (or modules.tipbot.postgres.url in config)")
	}
	parsedURL, err := url.Parse(databaseURL)
	if err != nil {
		return nil, errors.Wrap(errs.InvalidArgument, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[parsedURL.Scheme]; !ok {
		return nil, errors.Wrapf(errs.Unsupported, "unsupported database driver: %s", parsedURL.Scheme)
	}

	migrationURL := cloneURLWithQuery(parsedURL, url.Values{"x-migrations-table": {tipbotMigrationTable}})
	m, err := migrate.New("file://"+source, migrationURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		prefix: fmt.Sprintf("[%s] ", "Tipbot"),
	}
	return m, nil
}
