package vos

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// EnvPath is the variable holding the command search path.
const EnvPath = "PATH"

var (
	// ErrNotFound is the error resulting if a path search failed to find an
	// executable file.
	ErrNotFound = exec.ErrNotFound

	// ErrSpawn is returned when the operating system couldn't create a new
	// process at all, typically because of resource exhaustion.
	ErrSpawn = errors.New("can't create process")
)

func findExecutable(fsys VFS, wd, file string) error {
	d, err := fsys.Stat(Abs(wd, file))
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fs.ErrPermission
	case err != nil:
		return ErrNotFound
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file.
//
// If file contains a slash, it is tried directly and the search path is not
// consulted; a file that exists but isn't executable yields fs.ErrPermission.
// If PATH is absent from env, file is looked up in the working directory.
// Otherwise the PATH entries are tried left to right, an empty entry meaning
// the working directory, and the first executable candidate wins.
//
// Relative results are relative to wd. A miss returns ErrNotFound.
func LookPath(fsys VFS, wd string, env VEnv, file string) (string, error) {
	if strings.Contains(file, "/") {
		if err := findExecutable(fsys, wd, file); err != nil {
			return "", err
		}
		return file, nil
	}

	path, ok := env.LookupEnv(EnvPath)
	if !ok {
		candidate := "./" + file
		if err := findExecutable(fsys, wd, candidate); err != nil {
			return "", ErrNotFound
		}
		return candidate, nil
	}

	for _, dir := range strings.Split(path, ":") {
		candidate := "./" + file
		if dir != "" {
			candidate = filepath.Join(dir, file)
		}
		if err := findExecutable(fsys, wd, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// ProcAttr holds the attributes that will be applied to a new process.
type ProcAttr struct {
	// If Dir is non-empty, the child changes into the directory before
	// creating the process. Relative program paths are resolved against it.
	Dir string
	// Env is the complete environment of the new process in "key=value" form.
	Env []string
	// Files specifies the standard streams inherited by the new process.
	// If nil, the process reads nothing and its output is discarded.
	Files VIO
}

// Launcher runs programs to completion.
type Launcher interface {
	// Launch runs the program at path with the given argv and blocks until it
	// exits. The status is always meaningful; a non-nil error describes a
	// failure to start the program that the caller should report. Errors
	// wrapping ErrSpawn mean no process was created.
	Launch(path string, argv []string, attr *ProcAttr) (int, error)
}

// OSLauncher starts real operating system processes.
type OSLauncher struct{}

var _ Launcher = OSLauncher{}

// Launch implements Launcher.Launch.
func (OSLauncher) Launch(path string, argv []string, attr *ProcAttr) (int, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	files := attr.Files
	if files == nil {
		files = NewNullIO()
	}
	env := attr.Env
	if env == nil {
		env = []string{}
	}

	// Build the command directly rather than through exec.Command so path is
	// used verbatim with no second search.
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Dir:    attr.Dir,
		Stdin:  files.Stdin(),
		Stdout: files.Stdout(),
		Stderr: files.Stderr(),
	}

	if err := cmd.Start(); err != nil {
		return startStatus(err)
	}

	waitErr := cmd.Wait()
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		log.Printf("%s: wait: %v", path, waitErr)
	}

	return exitStatus(cmd.ProcessState), nil
}

// startStatus classifies a failure to start a program. The child never runs
// any of the interpreter's own logic, so every failure becomes a status here.
func startStatus(err error) (int, error) {
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.ENOMEM):
		return ExitFailure, fmt.Errorf("%w: %v", ErrSpawn, err)
	case errors.Is(err, fs.ErrPermission), errors.Is(err, unix.ENOEXEC):
		return StatusPermissionDenied, nil
	default:
		return ExitFailure, unwrapPathError(err)
	}
}

// exitStatus decodes the wait status of a finished process. Children killed
// by a signal report 128 plus the signal number.
func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return ExitFailure
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalBase + int(ws.Signal())
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return ExitFailure
}

// unwrapPathError drops the "fork/exec <path>:" prefix, the caller already
// prints the command name.
func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
