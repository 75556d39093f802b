//go:build windows

package utils

import (
	"fmt"
	"os/exec"
	"strings"
)

const taskName = "TunnelKeeper"

/**
 * Register the keeper for background execution at login
 * @param {string} exePath - Absolute path of the keeper executable
 * @returns {error} Returns error if schtasks fails
 * @description
 * - Creates (or replaces, /F) a logon-triggered scheduled task that runs
 *   the keeper in server mode
 */
func InstallStartup(exePath string) error {
	cmd := exec.Command("schtasks", "/Create",
		"/TN", taskName,
		"/TR", fmt.Sprintf("\"%s\" server", exePath),
		"/SC", "ONLOGON",
		"/F")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to create scheduled task: %v (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// UninstallStartup deletes the scheduled task. A missing task is a no-op.
func UninstallStartup() error {
	if !StartupInstalled() {
		return nil
	}
	cmd := exec.Command("schtasks", "/Delete", "/TN", taskName, "/F")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to delete scheduled task: %v (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// StartupInstalled reports whether the scheduled task exists.
func StartupInstalled() bool {
	return exec.Command("schtasks", "/Query", "/TN", taskName).Run() == nil
}
