//go:build !raylib

package main

import (
	"errors"
	"io/fs"
)

func runRaylib(*Config, Theme, *Store, fs.FS) error {
	return errors.New("raylib backend needs a build with -tags raylib")
}
