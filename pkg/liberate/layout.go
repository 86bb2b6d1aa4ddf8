package liberate

import (
	"path/filepath"

	"github.com/matzehuels/liberate/pkg/errors"
)

// Layout selects where the staging jar and liberated classes go.
type Layout string

const (
	// LayoutSeparate extracts into a dedicated liberated-classes directory.
	LayoutSeparate Layout = "separate"
	// LayoutInPlace extracts over the project output directory.
	LayoutInPlace Layout = "in-place"
)

// File and directory names used by the layouts.
const (
	StagingJarName             = "liberated-staging.jar"
	DiscardName                = "liberated-discarded"
	InPlaceStagingJarName      = "onlyThoseRequired.jar"
	InPlaceDiscardName         = "discarded"
	DefaultLiberatedClassesDir = "liberated-classes"
	ConfigFileName             = "liberate.pro"
)

// ParseLayout converts a configuration value to a Layout. The empty string
// selects LayoutSeparate.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutSeparate:
		return LayoutSeparate, nil
	case LayoutInPlace:
		return LayoutInPlace, nil
	}
	return "", errors.New(errors.ErrCodeConfiguration, "unknown layout %q", s)
}

// Paths are the locations a run reads and writes.
type Paths struct {
	BaseDir     string // ProGuard -basedirectory; holds liberate.pro
	StagingName string // staging jar, relative to BaseDir
	DiscardName string // output of the also-support jars, relative to BaseDir
	Destination string // directory the staging jar is extracted into
}

// StagingJar returns the absolute staging jar path.
func (p Paths) StagingJar() string { return filepath.Join(p.BaseDir, p.StagingName) }

// ConfigFile returns the path liberate.pro is written to.
func (p Paths) ConfigFile() string { return filepath.Join(p.BaseDir, ConfigFileName) }

// Validate checks that the staging and discard names are bare file names
// inside BaseDir.
func (p Paths) Validate() error {
	for _, name := range []string{p.StagingName, p.DiscardName} {
		if err := errors.ValidateFileName(name); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "layout output %q", name)
		}
	}
	return nil
}

// Paths resolves the layout for a build. liberatedDir overrides the
// separate layout's destination and is ignored in place.
func (l Layout) Paths(buildDir, outputDir, liberatedDir string) (Paths, error) {
	if buildDir == "" {
		return Paths{}, errors.New(errors.ErrCodeConfiguration, "build directory is required")
	}
	if outputDir == "" {
		return Paths{}, errors.New(errors.ErrCodeConfiguration, "project output directory is required")
	}

	var p Paths
	switch l {
	case "", LayoutSeparate:
		dest := liberatedDir
		if dest == "" {
			dest = filepath.Join(buildDir, DefaultLiberatedClassesDir)
		}
		p = Paths{
			BaseDir:     buildDir,
			StagingName: StagingJarName,
			DiscardName: DiscardName,
			Destination: dest,
		}
	case LayoutInPlace:
		p = Paths{
			BaseDir:     buildDir,
			StagingName: InPlaceStagingJarName,
			DiscardName: InPlaceDiscardName,
			Destination: outputDir,
		}
	default:
		return Paths{}, errors.New(errors.ErrCodeConfiguration, "unknown layout %q", string(l))
	}
	if err := p.Validate(); err != nil {
		return Paths{}, err
	}
	return p, nil
}
