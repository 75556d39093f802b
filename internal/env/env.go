package env

import (
	"os"
	"path/filepath"
)

var Daemon bool = false
var ListenPort int = 0
var Version string = "1.2.0"

// (default: %USERPROFILE%/.tunnel-keeper on Windows, $HOME/.tunnel-keeper on Linux)
var KeeperDir string = GetKeeperDir()

/**
 * Get tunnel-keeper directory path
 * @returns {string} Returns tunnel-keeper directory path
 */
func GetKeeperDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tunnel-keeper")
}
