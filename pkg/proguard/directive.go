package proguard

import (
	"strings"

	"github.com/matzehuels/liberate/pkg/errors"
)

// Option keywords emitted by BuildConfiguration.
const (
	OptBaseDirectory  = "-basedirectory"
	OptInJar          = "-injar"
	OptOutJar         = "-outjar"
	OptLibraryJars    = "-libraryjars"
	OptKeep           = "-keep"
	OptIgnoreWarnings = "-ignorewarnings"
	OptDontOptimize   = "-dontoptimize"
	OptDontObfuscate  = "-dontobfuscate"
	OptDontPreverify  = "-dontpreverify"
	OptDontNote       = "-dontnote"
	OptDontWarn       = "-dontwarn"
	OptVerbose        = "-verbose"
)

// DefaultLibraryJar is the -libraryjars value used when none is configured.
// ProGuard expands <java.home> itself. The path only exists on pre-9 JDKs
// outside macOS; elsewhere library_jars must be set explicitly.
const DefaultLibraryJar = "<java.home>/lib/rt.jar"

// Params holds the inputs of BuildConfiguration.
type Params struct {
	BaseDir       string   // -basedirectory
	ProjectOutput string   // the project's compiled classes
	Liberate      []string // liberate-from jars
	Support       []string // also-support jars
	Filter        string   // appended verbatim to each liberate-from jar
	LibraryJars   []string // nil or empty selects DefaultLibraryJar
	EntryPoints   []string // fully-qualified class names to keep
	DiscardName   string   // output for also-support jars
	StagingName   string   // output jar for the liberated classes

	SuppressNotes    bool
	SuppressWarnings bool
	Verbose          bool
}

// BuildConfiguration returns the ProGuard directive list for p.
//
// The result is a pure function of p. It fails with CONFIGURATION when no
// entry points are given.
func BuildConfiguration(p Params) ([]string, error) {
	list := make([]string, 0, 20)
	list = append(list, OptBaseDirectory+" "+p.BaseDir)

	if len(p.Support) > 0 {
		for _, jar := range p.Support {
			list = append(list, OptInJar+" "+jar)
		}
		list = append(list, OptOutJar+" "+p.DiscardName)
	}

	list = append(list, OptInJar+" "+p.ProjectOutput)
	for _, jar := range p.Liberate {
		list = append(list, OptInJar+" "+jar+p.Filter)
	}
	// ProGuard only writes to a jar, never straight into a directory.
	list = append(list, OptOutJar+" "+p.StagingName)

	libs := p.LibraryJars
	if len(libs) == 0 {
		libs = []string{DefaultLibraryJar}
	}
	for _, lib := range libs {
		list = append(list, OptLibraryJars+" "+lib)
	}

	if len(p.EntryPoints) == 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "Please supply entryPoints.")
	}
	for _, ep := range p.EntryPoints {
		list = append(list, KeepDirective(ep))
	}

	list = append(list, OptIgnoreWarnings)
	// Left to whatever runs after the jar is packaged.
	list = append(list, OptDontOptimize, OptDontObfuscate, OptDontPreverify)

	if p.SuppressNotes {
		list = append(list, OptDontNote)
	}
	if p.SuppressWarnings {
		list = append(list, OptDontWarn)
	}
	if p.Verbose {
		list = append(list, OptVerbose)
	}
	return list, nil
}

// KeepDirective returns the directive keeping entryPoint and all its members.
func KeepDirective(entryPoint string) string {
	return OptKeep + " public class " + entryPoint + " {*;}"
}

// splitDirective separates the option keyword from its argument.
func splitDirective(d string) (opt, arg string) {
	d = strings.TrimSpace(d)
	if i := strings.IndexAny(d, " \t"); i >= 0 {
		return d[:i], strings.TrimSpace(d[i+1:])
	}
	return d, ""
}
