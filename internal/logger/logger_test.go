package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathUsesLogsDirByDefault(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("filename want %s got %s", defaultLogFilename, filepath.Base(got))
	}

	// macOS 的 TempDir 带符号链接，比较前先解掉
	wantDir, err := filepath.EvalSymlinks(filepath.Join(tmpDir, defaultLogDirName))
	if err != nil {
		t.Fatalf("log dir not created: %v", err)
	}
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve got dir failed: %v", err)
	}
	if gotDir != wantDir {
		t.Fatalf("log dir want %s got %s", wantDir, gotDir)
	}
}

func TestReleaseModeWritesJSONFile(t *testing.T) {
	tmpDir := t.TempDir()

	log := New("release", Options{Dir: tmpDir, Filename: "api.log"})
	log.Info("booking_worker_started")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "api.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if !strings.Contains(string(content), "booking_worker_started") {
		t.Fatalf("log file missing message, got %s", string(content))
	}
	if !strings.Contains(string(content), `"message"`) {
		t.Fatalf("release log should be json encoded, got %s", string(content))
	}
}

func TestDebugModeStaysOnStdout(t *testing.T) {
	tmpDir := t.TempDir()

	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug_console_message")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode must not create a log file")
	}
}
