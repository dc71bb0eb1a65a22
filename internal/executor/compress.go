package executor

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// gzipFile compresses path to path.gz and removes the original.
func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}

	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	in.Close()
	return os.Remove(path)
}

// zipFile archives path into <path-without-extension>.zip with the bare
// filename as the single archive member, then removes the original.
func zipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(zipPath(path))
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		zw.Close()
		out.Close()
		return err
	}
	if _, err := io.Copy(w, in); err != nil {
		zw.Close()
		out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	in.Close()
	return os.Remove(path)
}

// zipPath strips the file extension and appends .zip.
func zipPath(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if base == "" {
		base = path
	}
	return base + ".zip"
}
