package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-analyzer/pkg/types"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeTempConfig(t, "rules.yaml", `
id: strict
rules:
  - id: style.uppercase
    level: ERROR
  - id: procedure.equal-sign-spacing
    level: DISABLED
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "strict", cfg.ID)
	require.Len(t, cfg.Rules, 2)

	levels := cfg.Levels()
	require.Equal(t, types.RuleLevelError, levels["style.uppercase"])
	require.Equal(t, types.RuleLevelDisabled, levels["procedure.equal-sign-spacing"])
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeTempConfig(t, "rules.json",
		`{"id": "lenient", "rules": [{"id": "statement.delete-require-where", "level": "WARNING"}]}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "lenient", cfg.ID)
	require.Equal(t, types.RuleLevelWarning, cfg.Levels()["statement.delete-require-where"])
}

func TestLoadFromFileUnknownLevel(t *testing.T) {
	path := writeTempConfig(t, "rules.yaml", `
rules:
  - id: style.uppercase
    level: CRITICAL
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "CRITICAL")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("default")
	require.Equal(t, "default", cfg.ID)
	require.Empty(t, cfg.Rules, "default config carries no overrides")
	require.Empty(t, cfg.Levels())
}
