package system

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

const (
	maxArchiveBytes  = 512 << 20
	maxFontFileBytes = 64 << 20
)

var fontExtensions = map[string]bool{".ttf": true, ".otf": true}

// FontOption configures a FontInstaller.
type FontOption func(*FontInstaller)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) FontOption {
	return func(f *FontInstaller) { f.client = c }
}

// FontInstaller downloads a font archive into the user font directory and
// refreshes the font cache.
type FontInstaller struct {
	fs     types.FS
	runner runner.Runner
	client *http.Client
	dir    string
	family string
	logger zerolog.Logger
}

// NewFontInstaller installs fonts whose file names start with family into dir.
func NewFontInstaller(fsys types.FS, r runner.Runner, dir, family string, opts ...FontOption) *FontInstaller {
	f := &FontInstaller{
		fs:     fsys,
		runner: r,
		client: http.DefaultClient,
		dir:    dir,
		family: family,
		logger: logging.GetLogger("system.font"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Dir is the font directory.
func (f *FontInstaller) Dir() string { return f.dir }

// Installed reports whether a font file of the family is present in Dir.
func (f *FontInstaller) Installed() bool {
	entries, err := f.fs.ReadDir(f.dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if isFontFile(entry.Name()) && strings.HasPrefix(entry.Name(), f.family) {
			return true
		}
	}
	return false
}

// Ensure installs the font from url unless it is already present. It
// reports whether anything was installed.
func (f *FontInstaller) Ensure(ctx context.Context, url string) (bool, error) {
	if f.Installed() {
		f.logger.Info().Str("family", f.family).Msg("Font already installed")
		return false, nil
	}

	archive, err := f.Fetch(ctx, url)
	if err != nil {
		return false, err
	}
	defer os.Remove(archive)

	if _, err := f.Extract(archive, f.dir); err != nil {
		return false, err
	}
	return true, f.Install(ctx)
}

// Fetch downloads url to a temporary file and returns its path.
func (f *FontInstaller) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFontInstall, "invalid font url %s", url)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFontInstall, "failed to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrFontInstall, "failed to download %s: HTTP %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "dotstow-font-*.zip")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFontInstall, "failed to create temporary file")
	}
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxArchiveBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > maxArchiveBytes {
		err = fmt.Errorf("archive larger than %d bytes", maxArchiveBytes)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrapf(err, errors.ErrFontInstall, "failed to download %s", url)
	}

	f.logger.Info().Str("url", url).Int64("bytes", n).Msg("Downloaded font archive")
	return tmp.Name(), nil
}

// Extract copies the font files of archive into dir, flattening any
// directory structure. Other entries are ignored.
func (f *FontInstaller) Extract(archive, dir string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFontInstall, "cannot open font archive %s", archive)
	}
	defer r.Close()

	if err := f.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create font directory %s", dir)
	}

	var written []string
	for _, entry := range r.File {
		name := filepath.Base(entry.Name)
		if entry.FileInfo().IsDir() || !isFontFile(name) {
			continue
		}
		if entry.UncompressedSize64 > maxFontFileBytes {
			f.logger.Warn().Str("file", entry.Name).Msg("Font file too large, skipping")
			continue
		}

		data, err := readZipEntry(entry)
		if err != nil {
			return written, errors.Wrapf(err, errors.ErrFontInstall, "failed to read %s from archive", entry.Name)
		}
		dest := filepath.Join(dir, name)
		if err := f.fs.WriteFile(dest, data, 0644); err != nil {
			return written, errors.Wrapf(err, errors.ErrFontInstall, "failed to write %s", dest)
		}
		written = append(written, dest)
	}

	if len(written) == 0 {
		return nil, errors.Newf(errors.ErrFontInstall, "no font files found in %s", archive)
	}
	f.logger.Info().Int("files", len(written)).Str("dir", dir).Msg("Extracted fonts")
	return written, nil
}

// Install refreshes the font cache.
func (f *FontInstaller) Install(ctx context.Context) error {
	_, err := f.runner.Run(ctx, runner.Command{Name: "fc-cache", Args: []string{"-f", f.dir}})
	if err != nil {
		return errors.Wrap(err, errors.ErrFontInstall, "failed to refresh font cache").
			WithRemediation("fc-cache -f " + f.dir)
	}
	return nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxFontFileBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxFontFileBytes {
		return nil, fmt.Errorf("entry larger than %d bytes", maxFontFileBytes)
	}
	return data, nil
}

func isFontFile(name string) bool {
	return fontExtensions[strings.ToLower(filepath.Ext(name))]
}
