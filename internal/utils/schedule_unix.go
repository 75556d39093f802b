//go:build !windows

package utils

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// crontab条目尾部的标记，安装/卸载/查询都认这个标记
const cronTag = "# tunnel-keeper"

func readCrontab() ([]string, error) {
	out, err := exec.Command("crontab", "-l").Output()
	if err != nil {
		// 空crontab时crontab -l返回非0，按无条目处理
		return nil, nil
	}
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func writeCrontab(lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	cmd := exec.Command("crontab", "-")
	cmd.Stdin = &buf
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to write crontab: %v (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func dropTagged(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if strings.Contains(line, cronTag) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

/**
 * Register the keeper for background execution at login
 * @param {string} exePath - Absolute path of the keeper executable
 * @returns {error} Returns error if the crontab cannot be updated
 * @description
 * - Adds a tagged @reboot entry to the user crontab; an existing tagged
 *   entry is replaced so repeated installs stay idempotent
 */
func InstallStartup(exePath string) error {
	lines, err := readCrontab()
	if err != nil {
		return err
	}
	lines = dropTagged(lines)
	lines = append(lines, fmt.Sprintf("@reboot %s server %s", exePath, cronTag))
	return writeCrontab(lines)
}

// UninstallStartup removes the tagged crontab entry. No entry is a no-op.
func UninstallStartup() error {
	lines, err := readCrontab()
	if err != nil {
		return err
	}
	kept := dropTagged(lines)
	if len(kept) == len(lines) {
		return nil
	}
	return writeCrontab(kept)
}

// StartupInstalled reports whether the tagged crontab entry exists.
func StartupInstalled() bool {
	lines, _ := readCrontab()
	for _, line := range lines {
		if strings.Contains(line, cronTag) {
			return true
		}
	}
	return false
}
