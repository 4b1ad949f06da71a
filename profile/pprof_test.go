//go:build pprof

package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProfiler_StartWritesProfile(t *testing.T) {
	dir := t.TempDir()

	New(WithMode("mem"), WithPath(dir), WithQuiet(true)).Start().Stop()

	if _, err := os.Stat(filepath.Join(dir, "mem.pprof")); err != nil {
		t.Fatal(err)
	}
}
