package artifact

import (
	"path/filepath"
	"strings"
)

// DefaultLiberateFrom are the prefixes used when no liberate-from list is
// configured: the Scala runtime and Swing wrapper libraries.
var DefaultLiberateFrom = []string{
	"scala-library-",
	"scala-swing-",
}

// Artifact is a resolved dependency jar.
type Artifact struct {
	Name string // display name, e.g. "org.scala-lang:scala-library"
	Path string // location of the jar on disk
}

// New creates an Artifact for a jar path, naming it after the file.
func New(path string) Artifact {
	return Artifact{Name: filepath.Base(path), Path: path}
}

// FileName returns the base name of the jar, which is what prefixes are
// matched against.
func (a Artifact) FileName() string {
	return filepath.Base(a.Path)
}

// Classification is the result of [Classify].
type Classification struct {
	Liberate []Artifact // classes extracted from these jars
	Support  []Artifact // classes these jars need are kept
	Ignored  []Artifact // neither list matched
}

// LiberatePaths returns the paths of the liberate-from jars in order.
func (c Classification) LiberatePaths() []string { return paths(c.Liberate) }

// SupportPaths returns the paths of the also-support jars in order.
func (c Classification) SupportPaths() []string { return paths(c.Support) }

// Classify sorts deps into liberate-from, also-support and ignored buckets
// by file name prefix.
//
// A nil liberateFrom selects [DefaultLiberateFrom]; a non-nil empty slice
// matches nothing. Liberate-from prefixes are consulted before also-support
// ones, and the first matching prefix wins. Input order is preserved within
// each bucket and an artifact whose path was already seen is skipped.
func Classify(deps []Artifact, liberateFrom, alsoSupport []string) Classification {
	if liberateFrom == nil {
		liberateFrom = DefaultLiberateFrom
	}

	var c Classification
	seen := make(map[string]bool, len(deps))
	for _, a := range deps {
		if seen[a.Path] {
			continue
		}
		seen[a.Path] = true

		name := a.FileName()
		switch {
		case hasAnyPrefix(name, liberateFrom):
			c.Liberate = append(c.Liberate, a)
		case hasAnyPrefix(name, alsoSupport):
			c.Support = append(c.Support, a)
		default:
			c.Ignored = append(c.Ignored, a)
		}
	}
	return c
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func paths(arts []Artifact) []string {
	out := make([]string, len(arts))
	for i, a := range arts {
		out[i] = a.Path
	}
	return out
}
