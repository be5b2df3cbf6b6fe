package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterly-ai/masterly/internal/shared/config"
)

func TestNewDialector(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		wantName string
		wantErr  bool
	}{
		{name: "default is postgres", driver: "", wantName: "postgres"},
		{name: "postgres", driver: "postgres", wantName: "postgres"},
		{name: "mysql", driver: "mysql", wantName: "mysql"},
		{name: "unsupported", driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := newDialector(&config.DatabaseConfig{
				Driver:   tt.driver,
				Host:     "localhost",
				Port:     5432,
				Username: "postgres",
				Database: "masterly_test",
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, d.Name())
		})
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	pg := config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Username: "u", Password: "p", Database: "masterly"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=masterly sslmode=disable TimeZone=UTC", pg.GetDSN())

	my := config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, Username: "u", Password: "p", Database: "masterly"}
	assert.Contains(t, my.GetDSN(), "u:p@tcp(db:3306)/masterly?")
	assert.Contains(t, my.GetDSN(), "parseTime=true")
}
