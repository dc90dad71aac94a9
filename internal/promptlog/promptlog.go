// Package promptlog appends every accepted user prompt to an audit sink.
// Writes are fire-and-forget: a failed append is reported to the logger and
// swallowed so it can never fail the request that triggered it.
package promptlog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Recorder interface {
	Record(personaName, message string)
}

// FileRecorder appends newline-delimited entries to a single shared file.
// Each entry is written in one mutex-guarded append so concurrent requests
// cannot interleave.
type FileRecorder struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewFileRecorder(path string, log *zap.Logger) *FileRecorder {
	return &FileRecorder{path: path, log: log}
}

func FormatEntry(ts time.Time, personaName, message string) string {
	return fmt.Sprintf("[%s] [%s] User Prompt: %q\n---\n", ts.UTC().Format(time.RFC3339), personaName, message)
}

func (r *FileRecorder) Record(personaName, message string) {
	entry := FormatEntry(time.Now(), personaName, message)

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		r.log.Error("failed to open prompt log", zap.String("path", r.path), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		r.log.Error("failed to write prompt log", zap.String("path", r.path), zap.Error(err))
	}
}

type multiRecorder []Recorder

func (m multiRecorder) Record(personaName, message string) {
	for _, r := range m {
		r.Record(personaName, message)
	}
}

// Tee fans a record out to every given recorder.
func Tee(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}
