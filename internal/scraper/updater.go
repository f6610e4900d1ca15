// Package scraper provides high-level coordination and execution for virtualized Lua-based scraping modules.
package scraper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gense-cli/gense/filesystem"
)

// UpdateScript fetches the remote version of a script and swaps it in
// atomically when its contents differ from the local copy. Reports
// whether the local file changed.
func UpdateScript(ctx context.Context, client *http.Client, remoteURL, localPath string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch %s: status %s", remoteURL, resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	fs := filesystem.API()

	remoteHash := sha256.Sum256(bodyBytes)

	localBytes, err := fs.ReadFile(localPath)
	if err == nil {
		localHash := sha256.Sum256(localBytes)
		if bytes.Equal(localHash[:], remoteHash[:]) {
			return false, nil
		}
	}

	// Atomic swap prevents a half-written script from ever being compiled.
	tmpPath := localPath + ".tmp"
	if err := fs.WriteFile(tmpPath, bodyBytes, os.FileMode(0644)); err != nil {
		return false, err
	}

	if err := fs.Rename(tmpPath, localPath); err != nil {
		_ = fs.Remove(tmpPath)
		return false, err
	}

	return true, nil
}
