package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"filesort/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckOutputDirectory behaves like CheckDirectoryAccess but accepts a
// missing directory whose nearest existing ancestor is writable.
func CheckOutputDirectory(name, path string) Result {
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return CheckDirectoryAccess(name, path)
	}
	ancestor, err := existingAncestor(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	parent := CheckDirectoryAccess(name, ancestor)
	if !parent.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot be created under %s)", path, ancestor)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckSameDevice reports whether moves from source to output stay on one
// filesystem. Crossing devices is not an error: files are copied and the
// originals removed.
func CheckSameDevice(name, sourceDir, outputDir string) Result {
	target, err := existingAncestor(outputDir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("output: %v", err)}
	}
	var src, dst unix.Stat_t
	if err := unix.Stat(sourceDir, &src); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("stat %s: %v", sourceDir, err)}
	}
	if err := unix.Stat(target, &dst); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("stat %s: %v", target, err)}
	}
	if src.Dev == dst.Dev {
		return Result{Name: name, Passed: true, Detail: "same filesystem (rename)"}
	}
	return Result{Name: name, Passed: true, Detail: "different filesystems (copy then remove)"}
}

// CheckFormatTable verifies that the configured Format Table loads.
func CheckFormatTable(cfg *config.Config) Result {
	const name = "Format table"
	table, err := cfg.FormatTable()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	source := "built-in"
	switch {
	case len(cfg.Formats) > 0:
		source = "config"
	case cfg.Organize.FormatsFile != "":
		source = cfg.Organize.FormatsFile
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d categories (%s)", table.Len(), source)}
}

func existingAncestor(path string) (string, error) {
	current, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(current); err == nil {
			return current, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		next := filepath.Dir(current)
		if next == current {
			return "", fmt.Errorf("no existing parent for %s", path)
		}
		current = next
	}
}

func parentDir(path string) string {
	return filepath.Dir(path)
}
