package executor

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

func TestGzipFile(t *testing.T) {
	path := writeTempFile(t, "out.json", `{"rows": [1, 2, 3]}`)

	if err := gzipFile(path); err != nil {
		t.Fatalf("gzipFile() error: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("original file should be removed: %s", path)
	}

	f, err := os.Open(path + ".gz")
	if err != nil {
		t.Fatalf("Failed to open compressed file: %v", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("Failed to create gzip reader: %v", err)
	}
	defer gr.Close()

	content, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("Failed to read compressed content: %v", err)
	}
	if string(content) != `{"rows": [1, 2, 3]}` {
		t.Errorf("decompressed content = %q, want original", content)
	}
}

func TestZipFile(t *testing.T) {
	path := writeTempFile(t, "out.json", `{"rows": []}`)

	if err := zipFile(path); err != nil {
		t.Fatalf("zipFile() error: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("original file should be removed: %s", path)
	}

	archive := filepath.Join(filepath.Dir(path), "out.zip")
	zr, err := zip.OpenReader(archive)
	if err != nil {
		t.Fatalf("Failed to open archive %s: %v", archive, err)
	}
	defer zr.Close()

	if len(zr.File) != 1 {
		t.Fatalf("archive has %d members, want 1", len(zr.File))
	}
	if zr.File[0].Name != "out.json" {
		t.Errorf("archive member = %q, want out.json", zr.File[0].Name)
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("Failed to open archive member: %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("Failed to read archive member: %v", err)
	}
	if string(content) != `{"rows": []}` {
		t.Errorf("archive member content = %q, want original", content)
	}
}

func TestZipPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"out.json", "out.zip"},
		{"results/out.json", "results/out.zip"},
		{"noext", "noext.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := zipPath(tt.input); got != tt.want {
				t.Errorf("zipPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
