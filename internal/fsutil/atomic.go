package fsutil

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// AtomicWrite replaces path with data in one rename, so readers never see a
// half-written file. perm is applied after the swap since atomic.WriteFile
// does not set it for new files.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	return os.Chmod(path, perm)
}
