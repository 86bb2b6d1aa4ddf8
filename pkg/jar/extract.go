package jar

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/liberate/pkg/errors"
)

// Stats summarizes an extraction.
type Stats struct {
	Entries     int   // archive entries processed
	Files       int   // files written
	Directories int   // directories created
	Bytes       int64 // bytes copied
}

// Options controls Extract.
type Options struct {
	// Logger receives one line per created directory. Nil discards.
	Logger *log.Logger
	// Verbose logs created directories at info instead of debug level.
	Verbose bool
}

// Extract copies every entry of the jar at src into dst, in archive order.
//
// dst is created if missing. Existing files are truncated and rewritten.
// Entries ending in "/" create a directory. Errors:
//   - IO_ERROR when the jar cannot be opened, an entry name is unsafe, or an
//     entry cannot be read or written (the message names the entry)
//   - DIRECTORY_CREATION when a directory cannot be created
//
// The context is checked between entries.
func Extract(ctx context.Context, src, dst string, opts Options) (Stats, error) {
	var st Stats
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	r, err := zip.OpenReader(src)
	if err != nil {
		return st, errors.Wrap(errors.ErrCodeIO, err, "unable to open staging jar %s", src)
	}
	defer r.Close()

	created, err := ensureDir(dst)
	if err != nil {
		return st, err
	}
	level := log.DebugLevel
	if opts.Verbose {
		level = log.InfoLevel
	}
	if created {
		st.Directories++
		logger.Log(level, "created "+dst)
	}

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		st.Entries++

		name := f.Name
		if err := errors.ValidateEntryPath(name); err != nil {
			return st, errors.Wrap(errors.ErrCodeIO, err, "unable to create %s", name)
		}

		isDir := strings.HasSuffix(name, "/")
		n, err := createDirectories(dst, name, isDir, logger, level)
		st.Directories += n
		if err != nil {
			return st, err
		}
		if isDir {
			continue
		}

		written, err := copyEntry(f, filepath.Join(dst, filepath.FromSlash(name)))
		if err != nil {
			return st, errors.Wrap(errors.ErrCodeIO, err, "unable to create %s", name)
		}
		st.Files++
		st.Bytes += written
	}
	return st, nil
}

// createDirectories creates each missing directory leading up to the entry.
// The last path segment names the file itself unless isDir is set.
func createDirectories(root, name string, isDir bool, logger *log.Logger, level log.Level) (int, error) {
	tokens := strings.Split(strings.TrimSuffix(name, "/"), "/")
	n := len(tokens) - 1
	if isDir {
		n = len(tokens)
	}

	count := 0
	dir := root
	for i := 0; i < n; i++ {
		if tokens[i] == "" || tokens[i] == "." {
			continue
		}
		dir = filepath.Join(dir, tokens[i])
		created, err := ensureDir(dir)
		if err != nil {
			return count, err
		}
		if created {
			count++
			logger.Log(level, "created "+dir)
		}
	}
	return count, nil
}

// ensureDir creates dir if it does not exist and reports whether it did.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, errors.New(errors.ErrCodeDirectoryCreation, "unable to create directory: %s (a file is in the way)", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, errors.Wrap(errors.ErrCodeDirectoryCreation, err, "unable to create directory: %s", dir)
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		return false, errors.Wrap(errors.ErrCodeDirectoryCreation, err, "unable to create directory: %s", dir)
	}
	return true, nil
}

func copyEntry(f *zip.File, path string) (int64, error) {
	in, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
