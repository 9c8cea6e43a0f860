package vos

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, contents string, perm os.FileMode) string {
	t.Helper()

	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("test requires /bin/sh")
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestOSLauncher_Launch(t *testing.T) {
	cases := map[string]struct {
		script         string
		perm           os.FileMode
		expectedStatus int
	}{
		"success":           {"#!/bin/sh\nexit 0\n", 0755, 0},
		"exit-code":         {"#!/bin/sh\nexit 3\n", 0755, 3},
		"exit-126":          {"#!/bin/sh\nexit 126\n", 0755, StatusPermissionDenied},
		"killed-by-signal":  {"#!/bin/sh\nkill -9 $$\n", 0755, 128 + 9},
		"not-executable":    {"#!/bin/sh\nexit 0\n", 0644, StatusPermissionDenied},
		"exec-format-error": {"this is not a program\n", 0755, StatusPermissionDenied},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			path := writeScript(t, t.TempDir(), "prog", tc.script, tc.perm)

			status, err := OSLauncher{}.Launch(path, []string{"prog"}, nil)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, status)
		})
	}
}

func TestOSLauncher_Launch_streams(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "prog", "#!/bin/sh\necho \"$1 $FOO\"\necho oops >&2\nexit 4\n", 0755)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	status, err := OSLauncher{}.Launch(path, []string{"prog", "arg"}, &ProcAttr{
		Env:   []string{"FOO=bar"},
		Files: NewVIOAdapter(nil, stdout, stderr),
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, status)
	assert.Equal(t, "arg bar\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestOSLauncher_Launch_relativeToDir(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "prog", "#!/bin/sh\npwd\n", 0755)

	stdout := &bytes.Buffer{}
	status, err := OSLauncher{}.Launch("./prog", []string{"prog"}, &ProcAttr{
		Dir:   dir,
		Files: NewVIOAdapter(nil, stdout, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, status)

	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestOSLauncher_Launch_missing(t *testing.T) {
	status, err := OSLauncher{}.Launch(filepath.Join(t.TempDir(), "missing"), []string{"missing"}, nil)

	assert.Equal(t, ExitFailure, status)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrSpawn)
}
