package rawwave

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

func TestTempFileName(t *testing.T) {
	got := tempFileName("/tmp/out.wav", 7, fixedClock().Format(tempStampLayout))
	if got != "/tmp/out.wav.07-2024-03-09-14-05-07.tmp" {
		t.Fatalf("tempFileName=%q", got)
	}
}

func TestFileStoreWrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.wav")
	store := &FileStore{}

	err := store.WriteFile(name, []byte("first"))
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	err = store.WriteFile(name, []byte("second"))
	if err != nil {
		t.Fatalf("overwriting failed: %v", err)
	}

	data, err := store.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "second" {
		t.Fatalf("content=%q, want %q", data, "second")
	}

	assertNoTempFiles(t, dir)
}

func TestFileStoreNameCollision(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.wav")
	stamp := fixedClock().Format(tempStampLayout)

	taken := tempFileName(name, 3, stamp)

	err := os.WriteFile(taken, []byte("someone else's"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer

	store := &FileStore{
		MaxAttempts: 4,
		Logger:      slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		now:         fixedClock,
	}

	err = store.WriteFile(name, []byte("payload"))
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(name)
	if err != nil || string(data) != "payload" {
		t.Fatalf("content=%q err=%v", data, err)
	}

	// the colliding file belongs to someone else and is left alone
	other, err := os.ReadFile(taken)
	if err != nil || string(other) != "someone else's" {
		t.Fatalf("colliding temp file changed: %q %v", other, err)
	}

	if _, err := os.Stat(tempFileName(name, 2, stamp)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("used temp file must be renamed away, stat err=%v", err)
	}

	if !strings.Contains(logs.String(), "temporary file name taken") {
		t.Fatalf("collision not logged: %s", logs.String())
	}
}

func TestFileStoreTempNamesExhausted(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.wav")
	stamp := fixedClock().Format(tempStampLayout)

	for seq := range 2 {
		err := os.WriteFile(tempFileName(name, seq, stamp), nil, 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}

	store := &FileStore{MaxAttempts: 2, now: fixedClock}

	err := store.WriteFile(name, []byte("payload"))
	if !errors.Is(err, ErrTempFileExhausted) || !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected ErrTempFileExhausted, got %v", err)
	}

	if _, err := os.Stat(name); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("target must not be created, stat err=%v", err)
	}
}

func TestFileStoreMissingDirectory(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "out.wav")

	err := (&FileStore{}).WriteFile(name, []byte("payload"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}

	if errors.Is(err, ErrTempFileExhausted) {
		t.Fatalf("a missing directory isn't a name collision")
	}
}

func TestFileStoreReadMissing(t *testing.T) {
	_, err := (&FileStore{}).ReadFile(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 0 {
		t.Fatalf("temporary files left behind: %v", matches)
	}
}
