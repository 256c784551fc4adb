package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmdl-tool/internal/fmdl"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"profile": "rev3",
		"vertex_alignment": "never",
		"bug_compatible": true,
		"dictionaries": ["names.txt", "/abs/tex.txt"],
		"workers": 3
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{PreviewFormat: "tga"})

	assert.Equal(t, "rev3", cfg.Profile)
	assert.Equal(t, []string{filepath.Join(dir, "names.txt"), "/abs/tex.txt"}, cfg.Dictionaries)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "tga", cfg.PreviewFormat)
	assert.Equal(t, 256, cfg.PreviewSize)
	assert.Equal(t, "info", cfg.LogLevel)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, fmdl.Options{Profile: "rev3", Alignment: fmdl.AlignNever, BugCompatible: true}, opts)
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{Workers: 5, OutputDir: "out"})

	assert.Equal(t, "auto", cfg.Profile)
	assert.Equal(t, "profile", cfg.VertexAlignment)
	assert.Equal(t, "utf-8", cfg.DictionaryEncoding)
	assert.Equal(t, "webp", cfg.PreviewFormat)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "out", cfg.OutputDir)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, fmdl.AlignProfile, opts.Alignment)
}

func TestOptions_Invalid(t *testing.T) {
	cfg := Config{VertexAlignment: "sometimes"}
	_, err := cfg.Options()
	assert.Error(t, err)

	cfg = Config{Profile: "rev7"}
	_, err = cfg.Options()
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)

	path := writeConfig(t, t.TempDir(), `{"profile": `)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestDiscover_EnvVar(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{"debug_stats": true}`)
	t.Setenv(EnvVar, path)

	cfg, used, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.True(t, cfg.DebugStats)
}

func TestDiscover_WorkingDirectory(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	writeConfig(t, dir, `{"log_level": "debug"}`)
	t.Chdir(dir)

	cfg, used, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "fmdltool.json", filepath.Base(used))
	assert.Equal(t, "debug", cfg.LogLevel)
}
