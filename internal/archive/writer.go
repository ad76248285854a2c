// Package archive writes and reads the tar.xz bundles produced by batch
// rendering.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/issuetex/internal/validation"
)

// BundleExt is the file extension of output bundles.
const BundleExt = ".tar.xz"

// bundleEpoch is the modification time stamped on every entry so that the
// same inputs produce byte-identical bundles.
var bundleEpoch = time.Unix(0, 0).UTC()

// File is one bundle entry.
type File struct {
	Name string
	Data []byte
}

// WriteBundle writes files into a tar.xz archive at path, in order, and
// returns the archive size. Parent directories of path are created.
// Entry names must be single, safe path elements.
func WriteBundle(path string, files []File) (int64, error) {
	for _, f := range files {
		if err := validation.ValidateFilename(f.Name); err != nil {
			return 0, fmt.Errorf("bundle entry %q: %w", f.Name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create parent directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create bundle file: %w", err)
	}

	if err := writeTarXz(out, files); err != nil {
		out.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write bundle: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to close bundle: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func writeTarXz(w io.Writer, files []File) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	for _, f := range files {
		header := &tar.Header{
			Name:     f.Name,
			Mode:     0644,
			Size:     int64(len(f.Data)),
			ModTime:  bundleEpoch,
			Typeflag: tar.TypeReg,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if _, err := tw.Write(f.Data); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return xw.Close()
}
