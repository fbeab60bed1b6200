// Package fileutil provides verified file copies for exporting decoder
// artifacts out of the scratch work directory.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyVerified streams src to dst with SHA256 and size integrity checks.
// The destination is removed on mismatch so a failed export never leaves a
// truncated or corrupted file behind.
func CopyVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstHasher), io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

// ExportAll copies each source file into destDir with integrity verification,
// creating destDir if needed. It returns the destination paths in the same
// order as the sources.
func ExportAll(sources []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory %q: %w", destDir, err)
	}
	exported := make([]string, 0, len(sources))
	for _, src := range sources {
		dst := filepath.Join(destDir, filepath.Base(src))
		if err := CopyVerified(src, dst); err != nil {
			return exported, fmt.Errorf("export %s: %w", filepath.Base(src), err)
		}
		exported = append(exported, dst)
	}
	return exported, nil
}
