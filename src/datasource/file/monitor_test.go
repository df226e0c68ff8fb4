package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMonitorReportsTargetWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cardio_train.csv")
	require.NoError(t, os.WriteFile(target, []byte("id;age\n"), 0644))

	monitor, err := NewFileMonitor(target)
	require.NoError(t, err)
	defer monitor.Close()

	hits := make(chan string, 1)
	go monitor.Watch(func(path string) {
		select {
		case hits <- path:
		default:
		}
	})

	// Give the watcher a moment to arm before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("id;age\n1;18393\n"), 0644))

	select {
	case path := <-hits:
		assert.Equal(t, filepath.Clean(target), filepath.Clean(path))
	case <-time.After(5 * time.Second):
		t.Fatal("no notification for target file write")
	}
}

func TestFileMonitorIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cardio_train.csv")
	require.NoError(t, os.WriteFile(target, []byte("id;age\n"), 0644))

	monitor, err := NewFileMonitor(target)
	require.NoError(t, err)
	defer monitor.Close()

	hits := make(chan string, 1)
	go monitor.Watch(func(path string) {
		select {
		case hits <- path:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x\n"), 0644))

	select {
	case path := <-hits:
		t.Fatalf("unexpected notification for %s", path)
	case <-time.After(500 * time.Millisecond):
	}
}
