package snappeg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/sirupsen/logrus"

	"github.com/shibukawa/snappeg/cursor"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "snappeg.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, cursor.DefaultTabWidth, config.Input.TabWidth)
	assert.Equal(t, ModeInt, config.Calc.Mode)
	assert.Equal(t, 256, config.Cache.Size)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "snappeg.yaml")
	configContent := `
input:
  tab_width: 8
  strict: true
calc:
  mode: decimal
  division_precision: 4
cache:
  size: 32
trace:
  enabled: true
  level: info
`
	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	assert.NoError(t, err)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, 8, config.Input.TabWidth)
	assert.True(t, config.Input.Strict)
	assert.Equal(t, ModeDecimal, config.Calc.Mode)
	assert.Equal(t, int32(4), config.Calc.DivisionPrecision)
	assert.Equal(t, 32, config.Cache.Size)
	assert.True(t, config.Trace.Enabled)
	assert.Equal(t, logrus.InfoLevel, config.TraceLevel())
}

func TestParseConfig_PartialConfigGetsDefaults(t *testing.T) {
	config, err := ParseConfig([]byte("calc:\n  mode: decimal\n"))
	assert.NoError(t, err)
	assert.Equal(t, ModeDecimal, config.Calc.Mode)
	assert.Equal(t, int32(16), config.Calc.DivisionPrecision)
	assert.Equal(t, cursor.DefaultTabWidth, config.Input.TabWidth)
	assert.Equal(t, "debug", config.Trace.Level)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown calc mode", "calc:\n  mode: float\n", ErrUnknownCalcMode},
		{"negative tab width", "input:\n  tab_width: -1\n", ErrConfigValidation},
		{"negative precision", "calc:\n  division_precision: -2\n", ErrConfigValidation},
		{"negative cache size", "cache:\n  size: -1\n", ErrConfigValidation},
		{"bad trace level", "trace:\n  level: chatty\n", ErrConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.content))
			assert.IsError(t, err, tt.wantErr)
		})
	}
}

func TestParseConfig_StrictModeUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("calc:\n  mode: int\n  unknown_key: 1\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_key")
}

func TestParseConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SNAPPEG_MODE", "decimal")
	t.Setenv("SNAPPEG_TRACE_DIR", "/tmp/trace")

	config, err := ParseConfig([]byte("calc:\n  mode: ${SNAPPEG_MODE}\ntrace:\n  output: $SNAPPEG_TRACE_DIR/rules.log\n"))
	assert.NoError(t, err)
	assert.Equal(t, ModeDecimal, config.Calc.Mode)
	assert.Equal(t, "/tmp/trace/rules.log", config.Trace.Output)
}

func TestConfig_CursorOptions(t *testing.T) {
	config := DefaultConfig()
	config.Input.TabWidth = 2
	config.Input.Strict = true

	it := cursor.NewString("\tx", config.CursorOptions()...)
	_, _, err := it.Next()
	assert.NoError(t, err)
	assert.Equal(t, 3, it.Pos().Column)

	strict := cursor.New([]byte{0xC0, 0xAF}, config.CursorOptions()...)
	_, _, err = strict.Next()
	assert.IsError(t, err, cursor.ErrMalformedInput)
}
