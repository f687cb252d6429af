package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// TombolaFS is an Afero FS with added functionality
// to replicate OS filesystems in testing
type TombolaFS interface {
	afero.Fs
	Abs(string) (string, error)
	HomeDir() (string, error)
}

type tombolaOSFS struct {
	afero.Fs
}

func NewTombolaOSFS() TombolaFS {
	return &tombolaOSFS{
		afero.NewOsFs(),
	}
}

func (f *tombolaOSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (f *tombolaOSFS) HomeDir() (string, error) {
	return os.UserHomeDir()
}

type tombolaMemFS struct {
	afero.Fs
}

func NewTombolaMemFS() TombolaFS {
	return &tombolaMemFS{
		afero.NewMemMapFs(),
	}
}

func (f *tombolaMemFS) Abs(path string) (string, error) {
	return path, nil
}

func (f *tombolaMemFS) HomeDir() (string, error) {
	return "/", nil
}
