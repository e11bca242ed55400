package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stagedFile is a completely written temporary file waiting to be renamed into its final path
type stagedFile struct {
	tmpPath string
	path    string
}

// stageFile writes into a temporary file next to path. Nothing is visible at path until Commit is called
func stageFile(path string, write func(io.Writer) error) (*stagedFile, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".goalcnf-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	staged := &stagedFile{tmpPath: tmpFile.Name(), path: path}

	if err := write(tmpFile); err != nil {
		tmpFile.Close()
		staged.Discard()
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(staged.tmpPath, 0644); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("failed to set output permissions: %w", err)
	}
	return staged, nil
}

func (file *stagedFile) Commit() error {
	if err := os.Rename(file.tmpPath, file.path); err != nil {
		return fmt.Errorf("an error occurred while writing to %v: %w", file.path, err)
	}
	return nil
}

// Discard removes the temporary file; it is a no-op once committed
func (file *stagedFile) Discard() {
	os.Remove(file.tmpPath)
}

// commitAll commits every staged file or, on the first failure, removes the ones already committed
func commitAll(files []*stagedFile) error {
	for i, file := range files {
		if err := file.Commit(); err != nil {
			for _, committed := range files[:i] {
				os.Remove(committed.path)
			}
			return err
		}
	}
	return nil
}

func writeBytes(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}
