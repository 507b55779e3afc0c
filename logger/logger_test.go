package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mhsanaei/blog/config"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		level   config.LogLevel
		want    logging.Level
		wantErr bool
	}{
		{config.Debug, logging.DEBUG, false},
		{config.Info, logging.INFO, false},
		{config.Notice, logging.NOTICE, false},
		{config.Warn, logging.WARNING, false},
		{config.Error, logging.ERROR, false},
		{config.LogLevel("loud"), logging.INFO, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got, err := LevelFor(tt.level)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BLOG_LOG_FOLDER", dir)

	InitLogger(logging.INFO)
	defer CloseLogger()

	Infof("hello %s", "blog")
	Debug("debug goes to file only")
	Noticef("signal %s", "received")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO - hello blog")
	assert.Contains(t, string(data), "DEBUG - debug goes to file only")
	assert.Contains(t, string(data), "NOTICE - signal received")
}
