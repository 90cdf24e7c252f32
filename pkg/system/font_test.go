// pkg/system/font_test.go
// TEST TYPE: Integration (httptest server, real temp dirs)
// DEPENDENCIES: testutil
// PURPOSE: Font download, extraction filtering and cache refresh

package system_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/system"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fontArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func serve(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFontInstaller_Ensure(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	dir := filepath.Join(env.TempDir(), "fonts")
	srv := serve(t, http.StatusOK, fontArchive(t, map[string]string{
		"JetBrainsMonoNerdFont-Regular.ttf":     "regular",
		"nested/JetBrainsMonoNerdFont-Bold.TTF": "bold",
		"README.md":                             "ignored",
		"OFL.txt":                               "ignored",
	}))

	r := &testutil.MockRunner{}
	r.On("Run", "fc-cache -f "+dir, mock.Anything).Return(runner.Result{}, nil).Once()

	f := system.NewFontInstaller(env.FS, r, dir, "JetBrainsMono", system.WithHTTPClient(srv.Client()))
	assert.False(t, f.Installed())

	installed, err := f.Ensure(context.Background(), srv.URL+"/JetBrainsMono.zip")
	require.NoError(t, err)
	assert.True(t, installed)
	assert.True(t, f.Installed())

	testutil.AssertFileContent(t, filepath.Join(dir, "JetBrainsMonoNerdFont-Regular.ttf"), "regular")
	testutil.AssertFileContent(t, filepath.Join(dir, "JetBrainsMonoNerdFont-Bold.TTF"), "bold")
	testutil.AssertNotExists(t, filepath.Join(dir, "README.md"))
	testutil.AssertNotExists(t, filepath.Join(dir, "nested"))

	// Second run is a no-op
	installed, err = f.Ensure(context.Background(), srv.URL+"/JetBrainsMono.zip")
	require.NoError(t, err)
	assert.False(t, installed)
	r.AssertExpectations(t)
}

func TestFontInstaller_HTTPError(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	srv := serve(t, http.StatusNotFound, nil)

	f := system.NewFontInstaller(env.FS, &testutil.MockRunner{}, env.TempDir(), "X", system.WithHTTPClient(srv.Client()))
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFontInstall))
	assert.Contains(t, err.Error(), "404")
}

func TestFontInstaller_ArchiveWithoutFonts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	archive := filepath.Join(env.TempDir(), "empty.zip")
	require.NoError(t, os.WriteFile(archive, fontArchive(t, map[string]string{"README.md": "x"}), 0644))

	f := system.NewFontInstaller(env.FS, &testutil.MockRunner{}, filepath.Join(env.TempDir(), "fonts"), "X")
	_, err := f.Extract(archive, f.Dir())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFontInstall))
}

func TestFontInstaller_NotAZip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	archive := filepath.Join(env.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(archive, []byte("<html>rate limited</html>"), 0644))

	f := system.NewFontInstaller(env.FS, &testutil.MockRunner{}, env.TempDir(), "X")
	_, err := f.Extract(archive, f.Dir())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFontInstall))
}

func TestFontInstaller_CacheFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	r := &testutil.MockRunner{}
	r.On("Run", testutil.CommandLine("fc-cache"), mock.Anything).
		Return(runner.Result{}, errors.New(errors.ErrCommand, "fc-cache: not found"))

	err := system.NewFontInstaller(env.FS, r, env.TempDir(), "X").Install(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFontInstall))
	assert.Contains(t, errors.Remediation(err), "fc-cache -f")
}
