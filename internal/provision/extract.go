package provision

import (
	"archive/tar"    // For reading .tar archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xi2/xz" // For reading .xz compressed data

	"github.com/kp7742/theos/internal/logger"
)

// extractTar unpacks a tar archive (plain, gzip, bzip2 or xz compressed,
// chosen by file suffix) into dest. strip drops that many leading path
// components from every entry; entries fully consumed by the strip are
// skipped. File modes from the archive are preserved so toolchain binaries
// keep their execute bits, and symlinks are recreated.
func extractTar(src, dest string, strip int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		logger.Debug("[DEBUG] Compression type is gzip\n")
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		logger.Debug("[DEBUG] Compression type is bzip2\n")
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] Compression type is xz\n")
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	case strings.HasSuffix(src, ".tar"):
		// Plain tar, no decompression layer.
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return err
		}

		name, ok := stripComponents(hdr.Name, strip)
		if !ok {
			continue
		}
		target := filepath.Join(dest, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			outFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return err
			}
			if _, err := io.Copy(outFile, tr); err != nil {
				outFile.Close()
				return err
			}
			outFile.Close()
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			// Re-extraction over an existing tree must not fail on a link
			// that is already in place.
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// stripComponents removes n leading path components from name. The second
// return is false when the entry has no components left.
func stripComponents(name string, n int) (string, bool) {
	if n <= 0 {
		return name, true
	}
	parts := strings.Split(filepath.ToSlash(name), "/")
	// Trailing slashes on directory entries produce an empty last element.
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) <= n {
		return "", false
	}
	return filepath.Join(parts[n:]...), true
}
