package logsink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Entry is one client-emitted log event. Level defaults to "info" and
// Timestamp to the server clock when omitted.
type Entry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// FileStore appends entries to one flat file per UTC calendar day. There is
// no locking: each append is a single O_APPEND write, so concurrent requests
// cannot corrupt a line even though interleaving order is unspecified.
type FileStore struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewFileStore creates the log directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: abs, logger: logger, now: time.Now}, nil
}

// Dir returns the absolute log directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// FileName returns today's log file name, app-<YYYY-MM-DD>.log in UTC.
func (s *FileStore) FileName() string {
	return fmt.Sprintf("app-%s.log", s.today())
}

// DownloadName returns the attachment name for today's file.
func (s *FileStore) DownloadName() string {
	return fmt.Sprintf("app-logs-%s.log", s.today())
}

// FilePath returns the full path of today's log file.
func (s *FileStore) FilePath() string {
	return filepath.Join(s.dir, s.FileName())
}

func (s *FileStore) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// Append writes one formatted entry to today's file.
func (s *FileStore) Append(entry Entry) error {
	if entry.Level == "" {
		entry.Level = "info"
	}
	if entry.Timestamp == "" {
		entry.Timestamp = s.now().UTC().Format(time.RFC3339Nano)
	}

	line := fmt.Sprintf("[%s] [%s] %s", entry.Timestamp, strings.ToUpper(entry.Level), entry.Message)
	if block := formatData(entry.Data); block != "" {
		line += "\n  Data: " + block
	}

	f, err := os.OpenFile(s.FilePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n\n"); err != nil {
		return err
	}
	return nil
}

// Read returns the content of today's file. The second return is false when
// the file does not exist yet.
func (s *FileStore) Read() (string, bool, error) {
	content, err := os.ReadFile(s.FilePath())
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(content), true, nil
}

// Prune removes app-*.log files older than the retention window. A zero
// retention keeps everything.
func (s *FileStore) Prune(retention time.Duration) error {
	if retention <= 0 {
		return nil
	}
	cutoff := s.now().UTC().Add(-retention)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		day, err := time.Parse("2006-01-02", strings.TrimSuffix(strings.TrimPrefix(name, "app-"), ".log"))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
				s.logger.Warn("failed to prune log file", zap.String("file", name), zap.Error(err))
				continue
			}
			s.logger.Info("pruned log file", zap.String("file", name))
		}
	}
	return nil
}

// formatData renders the optional data block: raw strings pass through,
// anything structured is pretty-printed.
func formatData(data any) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		pretty, err := json.MarshalIndent(v, "  ", "  ")
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(pretty)
	}
}
