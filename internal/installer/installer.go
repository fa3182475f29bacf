// Package installer copies word lists into the local dictionary store,
// fetching them over HTTP when the source is a URL.
package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/srcspell/srcspell/internal/utils"
	"github.com/srcspell/srcspell/pkg/dictionary"
)

const fetchTimeout = 30 * time.Second

// maxDownloadSize caps a fetched word list at 64 MiB.
const maxDownloadSize = 64 << 20

// Install places the word list at src into storeDir, normalizing it to a
// sorted plain-text list on the way. src may be a local file path or an
// http(s) URL. It returns the absolute path of the installed list.
func Install(ctx context.Context, src, storeDir string) (string, error) {
	if err := utils.EnsureDir(storeDir); err != nil {
		return "", fmt.Errorf("store directory: %w", err)
	}

	local := src
	if isURL(src) {
		tmp, cleanup, err := fetch(ctx, src)
		if err != nil {
			return "", err
		}
		defer cleanup()
		local = tmp
	}

	installed, err := dictionary.Import(local, storeDir)
	if err != nil {
		return "", err
	}
	log.Debugf("Installed %s -> %s", src, installed)
	return installed, nil
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// fetch downloads src to a temp file named after the URL path so the
// importer can derive the dictionary name and format from it.
func fetch(ctx context.Context, src string) (string, func(), error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", nil, fmt.Errorf("bad url %q: %w", src, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = "wordlist.txt"
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}

	dir, err := os.MkdirTemp("", "srcspell-install-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	tmp := filepath.Join(dir, name)
	f, err := os.Create(tmp)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	n, err := io.Copy(f, io.LimitReader(resp.Body, maxDownloadSize))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	log.Debugf("Fetched %d bytes from %s", n, src)
	return tmp, cleanup, nil
}
