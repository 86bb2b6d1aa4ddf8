package jar

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/liberate/pkg/errors"
)

// Entry is a named blob written by WriteEntries.
type Entry struct {
	Name string
	Data []byte
}

// WriteEntries writes entries to a new jar at path, in the given order.
func WriteEntries(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create jar %s", path)
	}
	if err := writeTo(f, entries); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write jar %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close jar %s", path)
	}
	return nil
}

func writeTo(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		fw, err := zw.Create(e.Name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(e.Data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// List returns the entry names of the jar at path in archive order.
func List(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "unable to open jar %s", path)
	}
	defer r.Close()

	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	return names, nil
}

// Classes returns the sorted class entry names of the jar at path.
func Classes(path string) ([]string, error) {
	names, err := List(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if strings.HasSuffix(n, ".class") {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}
