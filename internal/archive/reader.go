package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/issuetex/internal/validation"
)

// ReadBundle reads every regular file of a tar.xz bundle, in archive order.
// Entries whose names would escape the extraction directory are rejected.
func ReadBundle(path string) ([]File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}

	var files []File
	tr := tar.NewReader(xr)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			return nil, fmt.Errorf("bundle entry %s: %w", header.Name, validation.ErrPathTraversal)
		}
		if err != nil {
			return nil, fmt.Errorf("read bundle: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if !validation.IsPathSafe(".", header.Name) {
			return nil, fmt.Errorf("bundle entry %s: %w", header.Name, validation.ErrPathTraversal)
		}
		if header.Size > validation.MaxFileSize {
			return nil, fmt.Errorf("bundle entry %s: %w", header.Name, validation.ErrFileTooLarge)
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read bundle entry %s: %w", header.Name, err)
		}
		files = append(files, File{Name: header.Name, Data: data})
	}
	return files, nil
}
