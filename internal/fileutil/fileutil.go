package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// DirMode is the permission used for every directory filesort creates.
const DirMode os.FileMode = 0o755

// EnsureDir creates dir (and parents) when absent. An existing directory is
// not an error; an existing non-directory is.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return err
	}
	return nil
}

// Move relocates src to dst with os.Rename. When the rename crosses a
// filesystem boundary it copies with integrity verification and removes the
// source, matching mv semantics. An existing dst is replaced the way rename
// replaces it.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !IsCrossDevice(err) {
		return err
	}
	info, statErr := os.Stat(src)
	if statErr != nil {
		return fmt.Errorf("stat source: %w", statErr)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("copy file across devices: %w", err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("preserve mode: %w", err)
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// IsCrossDevice reports whether err is a rename failure caused by src and dst
// living on different filesystems.
func IsCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}

// CopyFileVerified copies src to dst, flushes dst to disk and then re-reads
// it to compare size and SHA256 against the source. dst is removed on
// mismatch.
func CopyFileVerified(src, dst string) error {
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
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Sync(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := verifyCopy(dst, written, srcHasher.Sum(nil)); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// verifyCopy reads path back from disk and checks it against the size and
// digest of the bytes that were written.
func verifyCopy(path string, wantSize int64, wantSum []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen copy: %w", err)
	}
	defer f.Close()

	dstHasher := sha256.New()
	size, err := io.Copy(dstHasher, f)
	if err != nil {
		return fmt.Errorf("read back copy: %w", err)
	}
	if size != wantSize {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", wantSize, size)
	}
	if !bytes.Equal(dstHasher.Sum(nil), wantSum) {
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
