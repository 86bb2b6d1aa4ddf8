package artifact

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/liberate/pkg/errors"
)

// FromPaths wraps explicit jar paths as artifacts, keeping their order.
// Blank entries are dropped.
func FromPaths(paths []string) []Artifact {
	var out []Artifact
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, New(p))
		}
	}
	return out
}

// ScanDir returns an artifact for every *.jar file directly inside dir,
// sorted by file name. Subdirectories are not searched.
func ScanDir(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dependency directory %s", dir)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read dependency directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isJar(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]Artifact, len(names))
	for i, n := range names {
		out[i] = New(filepath.Join(dir, n))
	}
	return out, nil
}

// ReadClasspath parses a class path listing such as the file produced by
//
//	mvn dependency:build-classpath -Dmdep.outputFile=cp.txt
//
// Entries are separated by the OS path list separator or newlines. Entries
// that are not jars (typically class directories) are skipped.
func ReadClasspath(r io.Reader) ([]Artifact, error) {
	var out []Artifact
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		for _, p := range filepath.SplitList(sc.Text()) {
			p = strings.TrimSpace(p)
			if p == "" || !isJar(p) {
				continue
			}
			out = append(out, New(p))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read class path")
	}
	return out, nil
}

// ReadClasspathFile opens path and parses it with [ReadClasspath].
func ReadClasspathFile(path string) ([]Artifact, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "class path file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open class path file %s", path)
	}
	defer f.Close()
	return ReadClasspath(f)
}

func isJar(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".jar")
}
