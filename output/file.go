package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Write creates dest through a temporary file in the same folder, filled by
// fn and renamed into place only when fn and the flush succeed. An existing
// dest is an error unless force is set.
func Write(dest string, force bool, fn func(io.Writer) error) (err error) {
	if err := checkDest(dest, force); err != nil {
		return err
	}

	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}

	canRename := false
	defer func() {
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
			}
		}

		if err != nil {
			if rmErr := os.Remove(outFile.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				slog.Error("could not remove temporary destination", "name", outFile.Name(), "error", rmErr)
			}
		}
	}()

	buf := bufio.NewWriter(outFile)
	if err = fn(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return fmt.Errorf("could not write destination %q: %w", dest, err)
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), err)
	}

	canRename = true
	return nil
}

func checkDest(dest string, force bool) error {
	info, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot overwrite non-regular file %q: %s", dest, info.Mode().String())
	}
	if !force {
		return fmt.Errorf("destination file already exists: %q", dest)
	}

	return nil
}
