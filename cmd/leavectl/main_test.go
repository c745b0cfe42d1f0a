package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go-leave/internal/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db:\n" +
		"  driver: sqlite\n" +
		"  path: " + filepath.ToSlash(filepath.Join(dir, "cli.db")) + "\n" +
		"  max_retries: 1\n" +
		"auth:\n" +
		"  jwt_secret: 0123456789abcdef0123456789abcdef\n" +
		"log:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMigrateAndSeed(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "--config", cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied (sqlite)")

	out, err = run(t, "--config", cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "sample data inserted")

	out, err = run(t, "--config", cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to seed")
}

func TestImportCSV(t *testing.T) {
	cfg := writeConfig(t)
	file := filepath.Join(t.TempDir(), "staff.csv")
	csv := "Name,Department,Total Leaves,Available Leaves\n" +
		"Ana,Ops,20,20\n" +
		"Ben,Ops,10,12\n"
	require.NoError(t, os.WriteFile(file, []byte(csv), 0o600))

	out, err := run(t, "--config", cfg, "import", file)
	require.NoError(t, err)

	var result importer.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"Row 3: Available leaves cannot exceed total leaves"}, result.Errors)
}

func TestImportRejectsUnknownExtension(t *testing.T) {
	cfg := writeConfig(t)
	file := filepath.Join(t.TempDir(), "staff.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := run(t, "--config", cfg, "import", file)
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "--config", cfg, "create-user", "--username", "hr-lead", "--password", "secret-pass", "--role", "hr")
	require.NoError(t, err)

	var user struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "hr-lead", user.Username)
	assert.Equal(t, "hr", user.Role)

	_, err = run(t, "--config", cfg, "create-user", "--username", "x", "--password", "y", "--role", "owner")
	assert.Error(t, err)
}
