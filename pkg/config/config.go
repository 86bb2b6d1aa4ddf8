// Package config loads liberate settings and layers them by precedence.
//
// Settings come from four places, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. the project's pom.xml ([FromPOM])
//  3. a liberate.toml file ([Load])
//  4. command-line flags
//
// Each source is a *Config where unset fields are empty: empty strings,
// nil slices and nil pointers. [Config.Overlay] copies only the set fields,
// so an explicitly empty list (liberate_from = []) still replaces the
// defaults.
//
// A minimal liberate.toml:
//
//	entry_points = ["com.example.Main"]
//	library_jars = ["<java.home>/../Classes/classes.jar"]
//
//	[dependencies]
//	dirs = ["target/dependency"]
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/liberate/pkg/artifact"
	"github.com/matzehuels/liberate/pkg/errors"
	"github.com/matzehuels/liberate/pkg/maven"
)

// FileName is the configuration file looked up in the project directory.
const FileName = "liberate.toml"

// Layout names accepted by the layout key.
const (
	LayoutSeparate = "separate"
	LayoutInPlace  = "in-place"
)

// Config mirrors the liberate goal parameters plus the inputs a Maven host
// used to provide.
type Config struct {
	Packaging           string `toml:"packaging"`
	Enabled             *bool  `toml:"enabled"`
	BuildDir            string `toml:"build_dir"`
	OutputDir           string `toml:"output_dir"`
	LiberatedClassesDir string `toml:"liberated_classes_dir"`
	Layout              string `toml:"layout"`

	LibraryJars      []string `toml:"library_jars"`
	LiberateFrom     []string `toml:"liberate_from"`
	AlsoSupport      []string `toml:"also_support"`
	Filter           *string  `toml:"filter"`
	EntryPoints      []string `toml:"entry_points"`
	SuppressNotes    *bool    `toml:"suppress_notes"`
	SuppressWarnings *bool    `toml:"suppress_warnings"`
	Verbose          *bool    `toml:"verbose"`

	Dependencies Dependencies `toml:"dependencies"`
	ProGuard     ProGuard     `toml:"proguard"`
	Cache        Cache        `toml:"cache"`
}

// Dependencies lists where dependency jars come from. All sources are
// concatenated in the order jars, dirs, classpath_file.
type Dependencies struct {
	Jars          []string `toml:"jars"`
	Dirs          []string `toml:"dirs"`
	ClasspathFile string   `toml:"classpath_file"`
}

// ProGuard locates the tool.
type ProGuard struct {
	Java string `toml:"java"`
	Jar  string `toml:"jar"`
}

// Cache configures the staging jar cache.
type Cache struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
	TTL     string `toml:"ttl"`
}

// Default returns the built-in settings for a project rooted at dir.
// Without a pom.xml the project is assumed to want liberation, so the
// packaging defaults to liberated-jar.
func Default(dir string) *Config {
	return &Config{
		Packaging: maven.LiberatedJar,
		BuildDir:  filepath.Join(dir, "target"),
		Layout:    LayoutSeparate,
	}
}

// FromPOM extracts the packaging type, build directories and plugin
// parameters declared in p.
func FromPOM(p *maven.POM) *Config {
	c := &Config{
		Packaging: p.Packaging,
		BuildDir:  p.BuildDir(),
		OutputDir: p.OutputDir(),
	}
	pc := p.LiberateConfig()
	if pc == nil {
		return c
	}
	c.LibraryJars = pc.LibraryJars
	c.LiberateFrom = pc.LiberateFrom
	c.AlsoSupport = pc.AlsoSupport
	c.EntryPoints = pc.EntryPoints
	c.Filter = pc.Filter
	c.LiberatedClassesDir = pc.LiberatedClassesDirectory
	c.SuppressNotes = pc.SuppressNotes
	c.SuppressWarnings = pc.SuppressWarnings
	c.Verbose = pc.Verbose
	c.Enabled = pc.Enabled
	return c
}

// Find returns the path of the liberate.toml in dir, if there is one.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// Load reads a TOML configuration file. Relative paths in it are resolved
// against the file's directory; library_jars are kept verbatim since
// ProGuard expands them. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config file %s", path)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeConfigParse, "%s: unknown key %q", path, undecoded[0].String())
	}

	// An empty TOML array must still read as "configured".
	keepEmpty(md, &c.LibraryJars, "library_jars")
	keepEmpty(md, &c.LiberateFrom, "liberate_from")
	keepEmpty(md, &c.AlsoSupport, "also_support")
	keepEmpty(md, &c.EntryPoints, "entry_points")

	c.resolvePaths(filepath.Dir(path))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func keepEmpty(md toml.MetaData, list *[]string, key string) {
	if *list == nil && md.IsDefined(key) {
		*list = []string{}
	}
}

func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.BuildDir = abs(c.BuildDir)
	c.OutputDir = abs(c.OutputDir)
	c.LiberatedClassesDir = abs(c.LiberatedClassesDir)
	for i, p := range c.Dependencies.Jars {
		c.Dependencies.Jars[i] = abs(p)
	}
	for i, p := range c.Dependencies.Dirs {
		c.Dependencies.Dirs[i] = abs(p)
	}
	c.Dependencies.ClasspathFile = abs(c.Dependencies.ClasspathFile)
	c.ProGuard.Jar = abs(c.ProGuard.Jar)
	c.Cache.Dir = abs(c.Cache.Dir)
}

// Overlay copies every field set in o onto c. Dependency sources are
// appended rather than replaced.
func (c *Config) Overlay(o *Config) {
	if o == nil {
		return
	}
	setString(&c.Packaging, o.Packaging)
	setString(&c.BuildDir, o.BuildDir)
	setString(&c.OutputDir, o.OutputDir)
	setString(&c.LiberatedClassesDir, o.LiberatedClassesDir)
	setString(&c.Layout, o.Layout)

	if o.LibraryJars != nil {
		c.LibraryJars = o.LibraryJars
	}
	if o.LiberateFrom != nil {
		c.LiberateFrom = o.LiberateFrom
	}
	if o.AlsoSupport != nil {
		c.AlsoSupport = o.AlsoSupport
	}
	if o.EntryPoints != nil {
		c.EntryPoints = o.EntryPoints
	}
	if o.Filter != nil {
		c.Filter = o.Filter
	}
	if o.Enabled != nil {
		c.Enabled = o.Enabled
	}
	if o.SuppressNotes != nil {
		c.SuppressNotes = o.SuppressNotes
	}
	if o.SuppressWarnings != nil {
		c.SuppressWarnings = o.SuppressWarnings
	}
	if o.Verbose != nil {
		c.Verbose = o.Verbose
	}

	c.Dependencies.Jars = append(c.Dependencies.Jars, o.Dependencies.Jars...)
	c.Dependencies.Dirs = append(c.Dependencies.Dirs, o.Dependencies.Dirs...)
	setString(&c.Dependencies.ClasspathFile, o.Dependencies.ClasspathFile)

	setString(&c.ProGuard.Java, o.ProGuard.Java)
	setString(&c.ProGuard.Jar, o.ProGuard.Jar)

	if o.Cache.Enabled != nil {
		c.Cache.Enabled = o.Cache.Enabled
	}
	setString(&c.Cache.Dir, o.Cache.Dir)
	setString(&c.Cache.TTL, o.Cache.TTL)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	switch c.Layout {
	case "", LayoutSeparate, LayoutInPlace:
	default:
		return errors.New(errors.ErrCodeConfiguration, "unknown layout %q (want %q or %q)", c.Layout, LayoutSeparate, LayoutInPlace)
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "cache ttl %q", c.Cache.TTL)
		}
	}
	return nil
}

// ValidateEntryPoints checks that every entry point names one class. It is
// separate from Validate because a skipped run never looks at them.
func (c *Config) ValidateEntryPoints() error {
	for _, ep := range c.EntryPoints {
		if err := errors.ValidateEntryPoint(ep); err != nil {
			return err
		}
	}
	return nil
}

// IsEnabled reports whether the goal should run. It defaults to true.
func (c *Config) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

// ResolvedOutputDir returns the project output directory, defaulting to
// <build dir>/classes.
func (c *Config) ResolvedOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(c.BuildDir, "classes")
}

// FilterValue returns the configured filter or "".
func (c *Config) FilterValue() string {
	if c.Filter == nil {
		return ""
	}
	return *c.Filter
}

// CacheEnabled reports whether staging jars are cached. It defaults to false.
func (c *Config) CacheEnabled() bool { return c.Cache.Enabled != nil && *c.Cache.Enabled }

// CacheTTL returns the configured cache TTL, or def when unset.
func (c *Config) CacheTTL(def time.Duration) time.Duration {
	if d, err := time.ParseDuration(c.Cache.TTL); err == nil && c.Cache.TTL != "" {
		return d
	}
	return def
}

// Artifacts resolves the dependency sources into artifacts, in the order
// jars, dirs, classpath_file.
func (c *Config) Artifacts() ([]artifact.Artifact, error) {
	out := artifact.FromPaths(c.Dependencies.Jars)
	for _, dir := range c.Dependencies.Dirs {
		arts, err := artifact.ScanDir(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, arts...)
	}
	if c.Dependencies.ClasspathFile != "" {
		arts, err := artifact.ReadClasspathFile(c.Dependencies.ClasspathFile)
		if err != nil {
			return nil, err
		}
		out = append(out, arts...)
	}
	return out, nil
}

// Bool returns a pointer to b, for building overlays from flags.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s.
func String(s string) *string { return &s }
