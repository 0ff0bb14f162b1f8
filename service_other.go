//go:build !windows

// Package main provides service stubs for non-Windows platforms, where
// the watcher always runs in the foreground.
package main

// RunAsService reports false so the caller takes the foreground path;
// service mode exists only on Windows.
func RunAsService() (bool, error) {
	return false, nil
}

// HandleServiceCommand reports false; service management commands exist
// only on Windows.
func HandleServiceCommand(args []string) bool {
	return false
}
