package init

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/novel-cli/internal/config"
)

func TestVerifyDatabase_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "nvl.db")

	err := verifyDatabase(&config.Config{DBPath: dbPath})
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestVerifyDatabase_DefaultPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	require.NoError(t, verifyDatabase(&config.Config{}))

	_, err := os.Stat(filepath.Join(dataHome, "nvl", "nvl.db"))
	assert.NoError(t, err)
}

func TestVerifyDatabase_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := verifyDatabase(&config.Config{DBPath: filepath.Join(blocker, "nvl.db")})
	require.Error(t, err)
}

func TestPrintNextSteps(t *testing.T) {
	var out bytes.Buffer
	printNextSteps(&out, "/tmp/nvl/config.yml")
	assert.Contains(t, out.String(), "Configuration saved to /tmp/nvl/config.yml")
	assert.Contains(t, out.String(), "nvl parse chapter-01.txt")
}

func TestConfigFilePermissions(t *testing.T) {
	// Create a temp directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	cfg := config.Config{
		DBPath:       "/data/nvl.db",
		DefaultNovel: "Saga",
	}

	// Save the config
	err := cfg.Save(configPath)
	require.NoError(t, err)

	// On Unix, permissions should be 0600 (user read/write only)
	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config file should have 0600 permissions")
}

func TestConfigFilePermissions_DirectoryCreation(t *testing.T) {
	// Create a temp directory with nested path
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "deeply", "config.yml")

	cfg := config.Config{DefaultNovel: "Saga"}

	// Save should create the directory structure
	require.NoError(t, cfg.Save(configPath))

	dirInfo, err := os.Stat(filepath.Dir(configPath))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())
}

func TestNewCmdInit_Flags(t *testing.T) {
	cmd := NewCmdInit()

	// Verify command structure
	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	// Verify flags exist
	dbFlag := cmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	novelFlag := cmd.Flags().Lookup("novel")
	require.NotNil(t, novelFlag)
	assert.Equal(t, "", novelFlag.DefValue)

	noVerifyFlag := cmd.Flags().Lookup("no-verify")
	require.NotNil(t, noVerifyFlag)
	assert.Equal(t, "false", noVerifyFlag.DefValue)
}
