package liberate

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/liberate/pkg/cache"
	"github.com/matzehuels/liberate/pkg/proguard"
)

// stamps describes every input of conf: program input jars, class
// directories (file by file) and library jars. Paths ProGuard expands
// itself, such as <java.home>, are stamped as missing.
func stamps(conf *proguard.Configuration) []cache.Stamp {
	var out []cache.Stamp
	for _, e := range conf.InputJars() {
		out = append(out, stampPath(conf.Resolve(e.Path))...)
	}
	for _, lib := range conf.LibraryJars {
		out = append(out, stampPath(conf.Resolve(lib.Path))...)
	}
	return out
}

func stampPath(path string) []cache.Stamp {
	info, err := os.Stat(path)
	if err != nil {
		return []cache.Stamp{{Path: path, Missing: true}}
	}
	if !info.IsDir() {
		return []cache.Stamp{{Path: path, Size: info.Size(), ModTime: info.ModTime()}}
	}

	var out []cache.Stamp
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			out = append(out, cache.Stamp{Path: p, Size: fi.Size(), ModTime: fi.ModTime()})
		}
		return nil
	})
	return out
}
