//go:build !windows

package utils

import "testing"

/**
 * TestDropTagged 只摘除带标记的crontab条目
 */
func TestDropTagged(t *testing.T) {
	lines := []string{
		"0 3 * * * /usr/local/bin/backup.sh",
		"@reboot /usr/local/bin/tunnel-keeper server " + cronTag,
		"*/5 * * * * /usr/bin/uptime",
	}

	kept := dropTagged(lines)
	if len(kept) != 2 {
		t.Fatalf("Expected 2 lines kept, got %d: %v", len(kept), kept)
	}
	for _, line := range kept {
		if line == lines[1] {
			t.Error("Tagged entry must be removed")
		}
	}
}

/**
 * TestDropTaggedWithoutEntry 无标记条目时原样保留
 */
func TestDropTaggedWithoutEntry(t *testing.T) {
	lines := []string{"0 3 * * * /usr/local/bin/backup.sh"}
	kept := dropTagged(lines)
	if len(kept) != 1 || kept[0] != lines[0] {
		t.Errorf("Untagged crontab must be unchanged, got %v", kept)
	}
}
