package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmapper-generator/internal/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "rowmapper.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	return file
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)

	assert.Equal(t, []string{"./..."}, cfg.Packages)
	assert.Equal(t, "column", cfg.Tag)
	assert.Equal(t, "Mapper", cfg.Output.Suffix)
	assert.Empty(t, cfg.Output.Package)
	assert.True(t, cfg.Comments)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	file := writeConfig(t, `
packages:
  - ./model
  - ./billing
tag: db
output:
  package: example.com/app/mappers
  dir: ./mappers
manifest: bindings.yaml
dry_run: true
log:
  level: debug
  json: true
`)

	cfg, err := Load(NewViper(file))
	require.NoError(t, err)

	assert.Equal(t, []string{"./model", "./billing"}, cfg.Packages)
	assert.Equal(t, "db", cfg.Tag)
	assert.Equal(t, "example.com/app/mappers", cfg.Output.Package)
	assert.Equal(t, "mappers", cfg.Output.Name)
	assert.Equal(t, "./mappers", cfg.Output.Dir)
	assert.Equal(t, "bindings.yaml", cfg.Manifest)
	assert.True(t, cfg.DryRun)

	rc := cfg.ResolutionConfig()
	assert.Equal(t, "example.com/app/mappers", rc.OutputPkgPath)
	assert.Equal(t, "mappers", rc.OutputPkgName)
	assert.Equal(t, "Mapper", rc.MapperSuffix)

	assert.Equal(t, "db", cfg.AnalyzeConfig().TagKey)

	lc := cfg.LoggerConfig()
	assert.Equal(t, logger.DebugLevel, lc.Level)
	assert.True(t, lc.JSON)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ROWMAPPER_TAG", "sql")
	t.Setenv("ROWMAPPER_OUTPUT_SUFFIX", "RowMapper")
	t.Setenv("ROWMAPPER_LOG_LEVEL", "warn")

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)

	assert.Equal(t, "sql", cfg.Tag)
	assert.Equal(t, "RowMapper", cfg.Output.Suffix)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing output dir", "output:\n  package: example.com/m\n", "output.dir is required"},
		{"dir without package", "output:\n  dir: ./m\n", "output.dir requires output.package"},
		{"bad tag", "tag: \"a b\"\n", "not a valid struct tag key"},
		{"bad level", "log:\n  level: loud\n", `log.level: "loud"`},
		{"no packages", "packages: []\n", "at least one package pattern"},
		{"lock is manifest", "manifest: b.yaml\nlock: b.yaml\n", "manifest and lock must be different files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(NewViper(writeConfig(t, tt.content)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_BrokenFile(t *testing.T) {
	_, err := Load(NewViper(writeConfig(t, "packages: [\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
