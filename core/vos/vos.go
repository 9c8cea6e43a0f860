// Package vos is the interpreter's view of the operating system: the
// environment store, the filesystem used for command and directory lookups,
// and the process launcher.
package vos

// Exit statuses produced by the launcher and the path resolver.
const (
	ExitSuccess = 0
	ExitFailure = 1

	// StatusPermissionDenied is reported when a program exists but can't be
	// executed.
	StatusPermissionDenied = 126
	// StatusNotFound is reported when no program matches a command name.
	StatusNotFound = 127

	// signalBase is added to the signal number of a killed child.
	signalBase = 128
)
