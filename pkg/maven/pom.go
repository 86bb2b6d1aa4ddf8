package maven

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/liberate/pkg/errors"
)

// DefaultPackaging is Maven's packaging when <packaging> is absent.
const DefaultPackaging = "jar"

// LiberatedJar is the packaging type the liberate goal acts on.
const LiberatedJar = "liberated-jar"

// PluginGroupID identifies the Maven plugin whose configuration is read.
const PluginGroupID = "com.lafros.maven.plugins"

// POM is a parsed pom.xml.
type POM struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string

	// BaseDir is the directory containing the pom.xml.
	BaseDir string

	raw pomProject
}

// Coordinate returns "groupId:artifactId". GroupID falls back to the
// parent's, as in Maven.
func (p *POM) Coordinate() string {
	return p.GroupID + ":" + p.ArtifactID
}

// BuildDir returns project.build.directory, defaulting to <basedir>/target.
func (p *POM) BuildDir() string {
	if d := strings.TrimSpace(p.raw.Build.Directory); d != "" {
		return p.abs(p.interpolate(d, propsBase))
	}
	return filepath.Join(p.BaseDir, "target")
}

// OutputDir returns project.build.outputDirectory, defaulting to
// <build directory>/classes.
func (p *POM) OutputDir() string {
	if d := strings.TrimSpace(p.raw.Build.OutputDirectory); d != "" {
		return p.abs(p.interpolate(d, propsBuild))
	}
	return filepath.Join(p.BuildDir(), "classes")
}

// Dependencies returns the declared compile and runtime dependencies as
// "groupId:artifactId" coordinates, in declaration order.
func (p *POM) Dependencies() []string {
	var out []string
	seen := make(map[string]bool)
	for _, dep := range p.raw.Dependencies {
		if dep.Scope == "test" || dep.Scope == "provided" || dep.Optional == "true" {
			continue
		}
		if strings.HasPrefix(dep.GroupID, "${") || strings.HasPrefix(dep.ArtifactID, "${") {
			continue
		}
		coord := dep.GroupID + ":" + dep.ArtifactID
		if !seen[coord] {
			seen[coord] = true
			out = append(out, coord)
		}
	}
	return out
}

// ReadPOM parses the pom.xml at path.
func ReadPOM(path string) (*POM, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "pom %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read pom %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return ParsePOM(data, filepath.Dir(abs))
}

// ParsePOM parses pom.xml content. baseDir anchors relative build paths.
func ParsePOM(data []byte, baseDir string) (*POM, error) {
	var raw pomProject
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse pom.xml")
	}
	if err := raw.validatePlugin(); err != nil {
		return nil, err
	}

	p := &POM{
		GroupID:    strings.TrimSpace(raw.GroupID),
		ArtifactID: strings.TrimSpace(raw.ArtifactID),
		Version:    strings.TrimSpace(raw.Version),
		Packaging:  strings.TrimSpace(raw.Packaging),
		BaseDir:    baseDir,
		raw:        raw,
	}
	if p.GroupID == "" && raw.Parent != nil {
		p.GroupID = strings.TrimSpace(raw.Parent.GroupID)
	}
	if p.Packaging == "" {
		p.Packaging = DefaultPackaging
	}
	return p, nil
}

// Property levels for interpolate. Each level may refer to the ones before
// it, never to itself.
const (
	propsBase   = iota // ${basedir}, ${project.basedir}
	propsBuild         // + ${project.build.directory}
	propsOutput        // + ${project.build.outputDirectory}
)

// interpolate expands the build path properties available at level.
func (p *POM) interpolate(s string, level int) string {
	if !strings.Contains(s, "${") {
		return s
	}
	pairs := []string{
		"${project.basedir}", p.BaseDir,
		"${basedir}", p.BaseDir,
	}
	if level >= propsBuild {
		pairs = append(pairs, "${project.build.directory}", p.BuildDir())
	}
	if level >= propsOutput {
		pairs = append(pairs, "${project.build.outputDirectory}", p.OutputDir())
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func (p *POM) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.BaseDir, path)
}

type pomProject struct {
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Packaging    string          `xml:"packaging"`
	Name         string          `xml:"name"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
	Parent       *pomParent      `xml:"parent"`
	Build        pomBuild        `xml:"build"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

type pomBuild struct {
	Directory       string      `xml:"directory"`
	OutputDirectory string      `xml:"outputDirectory"`
	Plugins         []pomPlugin `xml:"plugins>plugin"`
}

type pomPlugin struct {
	GroupID       string         `xml:"groupId"`
	ArtifactID    string         `xml:"artifactId"`
	Configuration *pluginConfig  `xml:"configuration"`
	Executions    []pomExecution `xml:"executions>execution"`
}

type pomExecution struct {
	Goals         []string      `xml:"goals>goal"`
	Configuration *pluginConfig `xml:"configuration"`
}
