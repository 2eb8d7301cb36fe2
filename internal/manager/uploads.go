package manager

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"swapman/internal/common/fsutil"
	"swapman/pkg/types"
)

// SaveUpload validates and persists an uploaded model file. Checks run
// before any bytes touch disk: extension first, then the size ceiling from
// the declared size, then the duplicate guard.
func (m *Manager) SaveUpload(filename string, declaredSize int64, r io.Reader) (types.UploadResponse, error) {
	if !strings.HasSuffix(filename, ".gguf") {
		return types.UploadResponse{}, ErrValidation("Only .gguf files are supported")
	}
	if declaredSize > m.maxUploadBytes() {
		return types.UploadResponse{}, ErrPayloadTooLarge("File too large")
	}
	dest := filepath.Join(m.modelsDir(), filename)
	if fsutil.PathExists(dest) {
		return types.UploadResponse{}, ErrConflict(fmt.Sprintf("File %s already exists", filename))
	}

	f, err := os.Create(dest)
	if err != nil {
		return types.UploadResponse{}, err
	}
	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return types.UploadResponse{}, err
	}

	m.activity.Append(fmt.Sprintf("Model uploaded: %s (%d bytes)", filename, written))
	return types.UploadResponse{
		Message:  fmt.Sprintf("Model %s uploaded successfully", filename),
		Filename: filename,
		Size:     written,
	}, nil
}
