package rawwave

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// ErrTempFileExhausted is returned when every temporary file name tried by a
// FileStore write already exists.
var ErrTempFileExhausted = errors.New("no free temporary file name")

const (
	defaultTempAttempts = 100
	tempStampLayout     = "2006-01-02-15-04-05"
)

// Storage reads and writes whole files. Codec uses it so the decoding and
// encoding paths can run against any backing store.
type Storage interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// FileStore is a Storage backed by the local file system.
//
// Writes go to a temporary file next to the target, named
// "<name>.NN-YYYY-MM-DD-hh-mm-ss.tmp" with NN counting down from the attempt
// budget, which is flushed and then renamed over the target. The target is
// never left half written.
type FileStore struct {
	// MaxAttempts bounds the temporary names tried per write. Zero means 100.
	MaxAttempts int
	// Logger receives debug records about name collisions and rename
	// fallbacks. Nil disables logging.
	Logger *slog.Logger

	now func() time.Time
}

var _ Storage = (*FileStore)(nil)

// ReadFile returns the content of the named file.
func (s *FileStore) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile atomically replaces the named file with data.
func (s *FileStore) WriteFile(name string, data []byte) error {
	log := s.logger().With("path", name)

	file, tmpName, err := s.createTemp(name, log)
	if err != nil {
		return err
	}

	err = writeAndSync(file, data)
	if err != nil {
		os.Remove(tmpName)
		return err
	}

	err = os.Rename(tmpName, name)
	if err == nil {
		return nil
	}

	// some platforms refuse to rename over an existing file
	log.Debug("rename failed, replacing target", "temp", tmpName, "err", err)

	rmErr := os.Remove(name)
	if rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
		os.Remove(tmpName)
		return fmt.Errorf("failed to remove %s: %w", name, rmErr)
	}

	err = os.Rename(tmpName, name)
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s: %w", tmpName, err)
	}

	return nil
}

func (s *FileStore) createTemp(name string, log *slog.Logger) (*os.File, string, error) {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = defaultTempAttempts
	}

	stamp := s.clock().Format(tempStampLayout)

	for seq := attempts - 1; seq >= 0; seq-- {
		tmpName := tempFileName(name, seq, stamp)

		file, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
		if err == nil {
			return file, tmpName, nil
		}

		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create temporary file: %w", err)
		}

		log.Debug("temporary file name taken", "temp", tmpName)
	}

	return nil, "", fmt.Errorf("%w for %s after %d attempts: %w", ErrTempFileExhausted, name, attempts, fs.ErrExist)
}

func tempFileName(name string, seq int, stamp string) string {
	return fmt.Sprintf("%s.%02d-%s.tmp", name, seq, stamp)
}

func writeAndSync(file *os.File, data []byte) error {
	_, err := file.Write(data)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", file.Name(), err)
	}

	err = file.Sync()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to flush %s: %w", file.Name(), err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", file.Name(), err)
	}

	return nil
}

func (s *FileStore) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *FileStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}

	return time.Now()
}
