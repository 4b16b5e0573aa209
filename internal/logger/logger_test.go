package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogConfig struct {
	level, output, file string
}

func (f fakeLogConfig) GetLevel() string  { return f.level }
func (f fakeLogConfig) GetOutput() string { return f.output }
func (f fakeLogConfig) GetFile() string   { return f.file }

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
		"fatal":   FATAL,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "level %q", in)
	}
}

func TestSetupWritesToRotatedFile(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefaultLogger(prev) })

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Setup(fakeLogConfig{level: "info", output: "file", file: path}))

	Info("campaign %d created", 42)
	Debug("this line is below the configured level")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "campaign 42 created")
	assert.NotContains(t, string(data), "below the configured level")
}

func TestSetupRejectsEmptyFilePath(t *testing.T) {
	err := Setup(fakeLogConfig{level: "info", output: "file"})
	assert.Error(t, err)
}
