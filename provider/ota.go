// Package provider manages built-in and custom scraping providers.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/internal/scraper"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/network"
	"github.com/gense-cli/gense/util"
	"github.com/gense-cli/gense/where"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// ScraperUpdatedMsg is dispatched to the Bubbletea event loop when OTA updates complete successfully.
type ScraperUpdatedMsg struct{}

// RemoteScript describes one provider script published in the
// configured scripts repository.
type RemoteScript struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

func repoCoordinates() (repo, branch string) {
	repo = viper.GetString(key.SourcesRepo)
	branch = viper.GetString(key.SourcesBranch)
	if branch == "" {
		branch = "main"
	}
	return repo, branch
}

// rawURL points at one file of the scripts repository.
func rawURL(file string) string {
	repo, branch := repoCoordinates()
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", repo, branch, file)
}

// RemoteScripts lists the Lua scripts published in the configured
// scripts repository via the GitHub contents API.
func RemoteScripts() ([]RemoteScript, error) {
	repo, branch := repoCoordinates()
	if repo == "" {
		return nil, fmt.Errorf("no scripts repository configured (%s)", key.SourcesRepo)
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/contents?ref=%s", repo, branch)
	resp, err := network.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list %s: status %s", repo, resp.Status)
	}

	var entries []RemoteScript
	if err = json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}

	var scripts []RemoteScript
	for _, entry := range entries {
		if entry.Type != "file" || !strings.HasSuffix(entry.Name, CustomProviderExtension) {
			continue
		}
		scripts = append(scripts, entry)
	}

	return scripts, nil
}

// InstallScript downloads a script into the sources directory.
func InstallScript(script RemoteScript) error {
	url := script.DownloadURL
	if url == "" {
		url = rawURL(script.Name)
	}

	resp, err := network.Client.Get(url)
	if err != nil {
		return err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %s", script.Name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return filesystem.API().WriteFile(filepath.Join(where.Sources(), script.Name), body, 0644)
}

// UpdateInstalled refreshes every installed script from the configured
// repository. It uses SHA-256 hash checks to avoid redundant disk
// writes and returns the names of the scripts that changed.
func UpdateInstalled() []string {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil
	}

	// Timeout to prevent the refresh from hanging on DNS failures
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated []string
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != CustomProviderExtension {
			continue
		}

		if updateSingleFile(ctx, f.Name()) {
			updated = append(updated, f.Name())
		}
	}

	return updated
}

// UpdateScrapers spawns a non-blocking background refresh of the
// installed scripts for the Bubbletea event loop.
func UpdateScrapers() tea.Cmd {
	return func() tea.Msg {
		if updated := UpdateInstalled(); len(updated) > 0 {
			log.Infof("OTA updated %d provider script(s). Emitting reload event.", len(updated))
			return ScraperUpdatedMsg{}
		}

		log.Info("OTA check completed. No updates available.")
		return nil
	}
}

func updateSingleFile(ctx context.Context, filename string) bool {
	localPath := filepath.Join(where.Sources(), filename)

	changed, err := scraper.UpdateScript(ctx, network.Client, rawURL(filename), localPath)
	if err != nil {
		log.Warnf("OTA refresh failed for %s: %v", filename, err)
		return false
	}

	if changed {
		log.Infof("OTA updated scraper script: %s", filename)
	}

	return changed
}
