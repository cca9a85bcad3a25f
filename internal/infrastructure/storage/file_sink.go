package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileReportSink appends job output to {dir}/{stream}_log.txt
type FileReportSink struct {
	dir string
	mu  sync.Mutex
}

// NewFileReportSink creates a sink writing under dir. The directory is
// created if missing.
func NewFileReportSink(dir string) (*FileReportSink, error) {
	if dir == "" {
		return nil, errors.New("report directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &FileReportSink{dir: dir}, nil
}

// Path returns the file a stream is written to
func (s *FileReportSink) Path(stream string) string {
	return filepath.Join(s.dir, stream+"_log.txt")
}

// Append writes line plus a newline to the stream's file
func (s *FileReportSink) Append(ctx context.Context, stream, line string) error {
	if err := validStream(stream); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path(stream), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report line: %w", err)
	}
	return f.Close()
}

func validStream(stream string) error {
	if stream == "" || filepath.Base(stream) != stream {
		return fmt.Errorf("invalid report stream %q", stream)
	}
	return nil
}
