package daemon

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// TimestampFormat prefixes every error log entry.
const TimestampFormat = "2006-01-02 15:04:05.000000"

// ErrorLog writes poll loop failures to stderr and, when a path is set,
// appends them to a log file. Each entry is a timestamp line followed by
// the error with its stack trace.
type ErrorLog struct {
	mu     sync.Mutex
	stderr io.Writer
	path   string
	now    func() time.Time
}

// NewErrorLog creates an error log. An empty path disables the file.
func NewErrorLog(stderr io.Writer, path string) *ErrorLog {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ErrorLog{stderr: stderr, path: path, now: time.Now}
}

// Path returns the log file path.
func (l *ErrorLog) Path() string {
	return l.path
}

// Record writes err to stderr and the log file.
// The returned error is about the log file only; stderr is best effort.
func (l *ErrorLog) Record(err error) error {
	if err == nil {
		return nil
	}
	entry := l.format(err)

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.stderr, entry)
	if l.path == "" {
		return nil
	}

	f, ferr := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if ferr != nil {
		return errors.Wrapf(ferr, "opening log file %s", l.path)
	}
	if _, werr := io.WriteString(f, entry); werr != nil {
		_ = f.Close()
		return errors.Wrapf(werr, "writing log file %s", l.path)
	}
	return f.Close()
}

func (l *ErrorLog) format(err error) string {
	var b strings.Builder
	b.WriteString(l.now().Format(TimestampFormat))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%+v", err)
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
