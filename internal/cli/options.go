package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/liberate/pkg/config"
	"github.com/matzehuels/liberate/pkg/liberate"
	"github.com/matzehuels/liberate/pkg/maven"
)

// projectOptions are the flags shared by every command that works on a
// project. Flags left unset do not override the configuration.
type projectOptions struct {
	dir        string
	configPath string
	noPOM      bool

	packaging    string
	layout       string
	buildDir     string
	outputDir    string
	liberatedDir string

	entryPoints  []string
	libraryJars  []string
	liberateFrom []string
	alsoSupport  []string
	filter       string

	jars          []string
	depDirs       []string
	classpathFile string

	suppressNotes    bool
	suppressWarnings bool
	proguardVerbose  bool

	java        string
	proguardJar string
}

func (o *projectOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.dir, "dir", "C", ".", "project directory")
	f.StringVar(&o.configPath, "config", "", "configuration file (default: <dir>/"+config.FileName+")")
	f.BoolVar(&o.noPOM, "no-pom", false, "ignore the project's pom.xml")

	f.StringVar(&o.packaging, "packaging", "", "packaging type; the goal only runs for "+maven.LiberatedJar)
	f.StringVar(&o.layout, "layout", "", "output layout: separate or in-place")
	f.StringVar(&o.buildDir, "build-dir", "", "build directory (default: <dir>/target)")
	f.StringVar(&o.outputDir, "output-dir", "", "compiled classes directory (default: <build-dir>/classes)")
	f.StringVar(&o.liberatedDir, "liberated-dir", "", "destination of the liberated classes")

	f.StringSliceVarP(&o.entryPoints, "entry-point", "e", nil, "class to keep with all its members (repeatable)")
	f.StringSliceVar(&o.libraryJars, "library-jar", nil, "ProGuard -libraryjars entry (repeatable)")
	f.StringSliceVar(&o.liberateFrom, "liberate-from", nil, "jar file name prefix to liberate classes from (repeatable)")
	f.StringSliceVar(&o.alsoSupport, "also-support", nil, "jar file name prefix needed to resolve references (repeatable)")
	f.StringVar(&o.filter, "filter", "", "ProGuard filter appended to each liberated jar, e.g. (!META-INF/**)")

	f.StringSliceVar(&o.jars, "jar", nil, "dependency jar (repeatable)")
	f.StringSliceVar(&o.depDirs, "deps-dir", nil, "directory of dependency jars (repeatable)")
	f.StringVar(&o.classpathFile, "classpath-file", "", "file listing the dependency class path")

	f.BoolVar(&o.suppressNotes, "suppress-notes", false, "pass -dontnote to ProGuard")
	f.BoolVar(&o.suppressWarnings, "suppress-warnings", false, "pass -dontwarn to ProGuard")
	f.BoolVar(&o.proguardVerbose, "proguard-verbose", false, "pass -verbose to ProGuard and log every directive")

	f.StringVar(&o.java, "java", "", "java binary used to run ProGuard")
	f.StringVar(&o.proguardJar, "proguard-jar", "", "path to proguard.jar")
}

// load layers defaults, pom.xml, the configuration file and flags.
func (o *projectOptions) load(cmd *cobra.Command) (*config.Config, error) {
	dir, err := filepath.Abs(o.dir)
	if err != nil {
		return nil, err
	}
	cfg := config.Default(dir)

	if !o.noPOM {
		pomPath := filepath.Join(dir, "pom.xml")
		if _, err := os.Stat(pomPath); err == nil {
			pom, err := maven.ReadPOM(pomPath)
			if err != nil {
				return nil, err
			}
			cfg.Overlay(config.FromPOM(pom))
		}
	}

	path := o.configPath
	if path == "" {
		path, _ = config.Find(dir)
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg.Overlay(file)
	}

	cfg.Overlay(o.overlay(cmd))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay converts the flags that were set into a configuration layer.
func (o *projectOptions) overlay(cmd *cobra.Command) *config.Config {
	f := cmd.Flags()
	c := &config.Config{
		Packaging:           o.packaging,
		Layout:              o.layout,
		BuildDir:            absPath(o.buildDir),
		OutputDir:           absPath(o.outputDir),
		LiberatedClassesDir: absPath(o.liberatedDir),
		Dependencies: config.Dependencies{
			Jars:          absPaths(o.jars),
			Dirs:          absPaths(o.depDirs),
			ClasspathFile: absPath(o.classpathFile),
		},
		ProGuard: config.ProGuard{
			Java: o.java,
			Jar:  absPath(o.proguardJar),
		},
	}
	if f.Changed("entry-point") {
		c.EntryPoints = nonNil(o.entryPoints)
	}
	if f.Changed("library-jar") {
		c.LibraryJars = nonNil(o.libraryJars)
	}
	if f.Changed("liberate-from") {
		c.LiberateFrom = nonNil(o.liberateFrom)
	}
	if f.Changed("also-support") {
		c.AlsoSupport = nonNil(o.alsoSupport)
	}
	if f.Changed("filter") {
		c.Filter = config.String(o.filter)
	}
	if f.Changed("suppress-notes") {
		c.SuppressNotes = config.Bool(o.suppressNotes)
	}
	if f.Changed("suppress-warnings") {
		c.SuppressWarnings = config.Bool(o.suppressWarnings)
	}
	if f.Changed("proguard-verbose") {
		c.Verbose = config.Bool(o.proguardVerbose)
	}
	return c
}

// request converts a resolved configuration into a liberate request.
func request(cfg *config.Config) (liberate.Request, error) {
	if err := cfg.ValidateEntryPoints(); err != nil {
		return liberate.Request{}, err
	}
	layout, err := liberate.ParseLayout(cfg.Layout)
	if err != nil {
		return liberate.Request{}, err
	}
	deps, err := cfg.Artifacts()
	if err != nil {
		return liberate.Request{}, err
	}
	return liberate.Request{
		Packaging:           cfg.Packaging,
		Enabled:             cfg.IsEnabled(),
		BuildDir:            cfg.BuildDir,
		OutputDir:           cfg.ResolvedOutputDir(),
		LiberatedClassesDir: cfg.LiberatedClassesDir,
		Layout:              layout,
		Dependencies:        deps,
		Parameters: liberate.Parameters{
			LibraryJars:      cfg.LibraryJars,
			LiberateFrom:     cfg.LiberateFrom,
			AlsoSupport:      cfg.AlsoSupport,
			Filter:           cfg.FilterValue(),
			EntryPoints:      cfg.EntryPoints,
			SuppressNotes:    isSet(cfg.SuppressNotes),
			SuppressWarnings: isSet(cfg.SuppressWarnings),
			Verbose:          isSet(cfg.Verbose),
		},
	}, nil
}

func isSet(b *bool) bool { return b != nil && *b }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func absPaths(ps []string) []string {
	var out []string
	for _, p := range ps {
		out = append(out, absPath(p))
	}
	return out
}

// skipReason reports why the goal does nothing for cfg, or "". Commands
// check it before resolving dependencies or opening the cache, so a skipped
// project never fails on inputs it does not use.
func skipReason(cfg *config.Config) string {
	return liberate.SkipReason(cfg.Packaging, cfg.IsEnabled())
}
