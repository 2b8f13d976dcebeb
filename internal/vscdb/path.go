// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vscdb

import "os"

// Exists reports whether a filesystem entry exists at path. Symlinks are
// followed. Empty or malformed paths do not exist.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// CheckPath returns a KindNotExist error naming path when nothing exists there.
func CheckPath(path string) error {
	if !Exists(path) {
		return &Error{Kind: KindNotExist, Path: path}
	}
	return nil
}
