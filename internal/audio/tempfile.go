package audio

import (
	"context"
	"os"

	"github.com/timmy/memezvukach/internal/logger"
)

// TempFile is a scoped temporary audio file. Release removes it; callers
// that hand the file to the transport wait out a grace delay first so the
// upload is never reading a deleted file.
type TempFile struct {
	path string
	done bool
}

// NewTempFile creates an empty temporary file in dir.
// Parameters:
//   - dir: directory for the file; created if missing.
//   - pattern: name pattern with extension, e.g. "voice-*.mp3".
// Returns:
//   - *TempFile: handle owning the file.
//   - error: non-nil when the file cannot be created.
func NewTempFile(dir, pattern string) (*TempFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}
	return &TempFile{path: path}, nil
}

// Path returns the file location.
func (t *TempFile) Path() string {
	return t.path
}

// Release deletes the file. Safe to call more than once; deletion failure
// is logged and otherwise ignored.
func (t *TempFile) Release(ctx context.Context) {
	if t == nil || t.done {
		return
	}
	t.done = true

	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		logger.CtxWarn(ctx, "Failed to delete temp file %s: %v", t.path, err)
		return
	}
	logger.CtxDebug(ctx, "Deleted temp file: %s", t.path)
}
