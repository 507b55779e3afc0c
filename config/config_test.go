package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDBPath(t *testing.T) {
	t.Setenv("BLOG_DB_FOLDER", "/tmp/blogdata")
	assert.Equal(t, "/tmp/blogdata/blog.db", GetDBPath())
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("BLOG_DEBUG", "")
	t.Setenv("BLOG_LOG_LEVEL", "")
	assert.Equal(t, Info, GetLogLevel())

	t.Setenv("BLOG_LOG_LEVEL", "warn")
	assert.Equal(t, Warn, GetLogLevel())

	t.Setenv("BLOG_DEBUG", "true")
	assert.Equal(t, Debug, GetLogLevel())
}

func TestDatabaseConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		isPg    bool
	}{
		{
			name: "default sqlite",
			env:  map[string]string{"BLOG_DB_TYPE": ""},
		},
		{
			name: "postgres from env",
			env: map[string]string{
				"BLOG_DB_TYPE":     "postgres",
				"BLOG_PG_HOST":     "db.internal",
				"BLOG_PG_PORT":     "6543",
				"BLOG_PG_DATABASE": "posts",
			},
			isPg: true,
		},
		{
			name:    "unsupported type",
			env:     map[string]string{"BLOG_DB_TYPE": "mysql"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c := GetDatabaseConfig()
			err := c.ValidateConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.isPg, c.IsPostgreSQL())
			if tt.isPg {
				assert.Contains(t, c.GetDSN(), "host=db.internal")
				assert.Contains(t, c.GetDSN(), "port=6543")
				assert.Contains(t, c.GetDSN(), "dbname=posts")
			} else {
				assert.Contains(t, c.GetDSN(), "_journal_mode=WAL")
			}
		})
	}
}
