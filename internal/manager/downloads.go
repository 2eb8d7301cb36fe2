package manager

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"swapman/internal/common/fsutil"
	"swapman/pkg/types"
)

// progressInterval controls how often a running download logs progress.
const progressInterval = 100 << 20 // 100MB

// StartDownload validates the request, reserves a target filename and kicks
// off a fire-and-forget download goroutine. The existence check is the only
// duplicate guard and is itself racy: two simultaneous requests for the same
// filename can both pass it. Accepted for a single-operator tool.
func (m *Manager) StartDownload(rawURL, filename string) (types.DownloadAccepted, error) {
	name, err := m.deriveFilename(rawURL, filename)
	if err != nil {
		return types.DownloadAccepted{}, err
	}
	dest := filepath.Join(m.modelsDir(), name)
	if fsutil.PathExists(dest) {
		return types.DownloadAccepted{}, ErrConflict(fmt.Sprintf("File %s already exists", name))
	}

	// No cancellation once started; a failed download deletes the partial file.
	go m.downloadFile(rawURL, dest, name)

	m.activity.Append("Started download: " + name)
	return types.DownloadAccepted{
		Message:  fmt.Sprintf("Download started for %s", name),
		Filename: name,
		Path:     dest,
	}, nil
}

func (m *Manager) deriveFilename(rawURL, filename string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", ErrValidation("url is required")
	}
	if filename == "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", ErrValidation("invalid url: " + err.Error())
		}
		filename = path.Base(u.Path)
		if filename == "." || filename == "/" || !strings.HasSuffix(filename, ".gguf") {
			filename = "model-" + m.now().Format("20060102-150405") + ".gguf"
		}
	}
	if !strings.HasSuffix(filename, ".gguf") {
		filename += ".gguf"
	}
	return filename, nil
}

func (m *Manager) downloadFile(rawURL, dest, name string) {
	m.activity.Append("Downloading " + name + "...")

	written, err := m.fetchTo(rawURL, dest, name)
	if err != nil {
		m.activity.Append(fmt.Sprintf("Download failed: %s - %s", name, err))
		modelDownloadsTotal.WithLabelValues("failure").Inc()
		if fsutil.PathExists(dest) {
			if rmErr := os.Remove(dest); rmErr != nil {
				m.logger.Error().Err(rmErr).Str("path", dest).Msg("removing partial download")
			}
		}
		return
	}
	m.activity.Append(fmt.Sprintf("Download completed: %s (%d bytes)", name, written))
	modelDownloadsTotal.WithLabelValues("success").Inc()
}

func (m *Manager) fetchTo(rawURL, dest, name string) (int64, error) {
	resp, err := m.downloadClient.Get(rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	totalSize := resp.ContentLength
	var written, lastLogged int64
	buf := make([]byte, 32<<10)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return written, writeErr
			}
			written += int64(n)
			if written-lastLogged >= progressInterval {
				lastLogged = written
				if totalSize > 0 {
					pct := float64(written) / float64(totalSize) * 100
					m.activity.Append(fmt.Sprintf("Download progress %s: %.1f%%", name, pct))
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, readErr
		}
	}
	return written, nil
}
