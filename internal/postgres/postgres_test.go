package postgres

import (
	"context"
	"testing"

	"github.com/gaze-network/tzbot/common/errs"
	"github.com/stretchr/testify/assert"
)

func TestConfigString(t *testing.T) {
	testcases := []struct {
		name     string
		conf     Config
		expected string
	}{
		{
			name:     "defaults",
			conf:     Config{},
			expected: "host=127.0.0.1 dbname=postgres port=5432 sslmode=prefer",
		},
		{
			name:     "credentials",
			conf:     Config{Host: "db", Port: "6543", DBName: "tzbot", SSLMode: "disable", User: "bot", Password: "secret"},
			expected: "host=db dbname=tzbot port=6543 sslmode=disable user=bot password=secret",
		},
		{
			name:     "url wins",
			conf:     Config{Host: "db", URL: "postgres://bot@localhost:5432/tzbot"},
			expected: "postgres://bot@localhost:5432/tzbot",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.conf.String())
		})
	}
}

func TestNewPoolInvalidConfig(t *testing.T) {
	_, err := NewPool(context.Background(), Config{MinConns: 32, MaxConns: 4})
	assert.ErrorIs(t, err, errs.InvalidArgument)

	_, err = NewPool(context.Background(), Config{URL: "postgres://%zz"})
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
