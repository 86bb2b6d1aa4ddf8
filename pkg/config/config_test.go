package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/liberate/pkg/errors"
	"github.com/matzehuels/liberate/pkg/maven"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
packaging = "liberated-jar"
enabled = true
build_dir = "out"
layout = "in-place"
library_jars = ["<java.home>/../Classes/classes.jar"]
liberate_from = []
also_support = ["scalaz-"]
filter = "(!META-INF/**)"
entry_points = ["com.example.Main"]
verbose = true

[dependencies]
jars = ["lib/scala-library-2.8.0.jar", "/abs/x.jar"]
classpath_file = "cp.txt"

[proguard]
jar = "tools/proguard.jar"

[cache]
enabled = true
ttl = "24h"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.BuildDir != filepath.Join(dir, "out") {
		t.Errorf("BuildDir = %q", c.BuildDir)
	}
	if c.Layout != LayoutInPlace {
		t.Errorf("Layout = %q", c.Layout)
	}
	if want := []string{"<java.home>/../Classes/classes.jar"}; !reflect.DeepEqual(c.LibraryJars, want) {
		t.Errorf("LibraryJars = %v, want %v", c.LibraryJars, want)
	}
	if c.LiberateFrom == nil || len(c.LiberateFrom) != 0 {
		t.Errorf("LiberateFrom = %#v, want empty non-nil", c.LiberateFrom)
	}
	if c.FilterValue() != "(!META-INF/**)" {
		t.Errorf("Filter = %q", c.FilterValue())
	}
	if c.Verbose == nil || !*c.Verbose {
		t.Error("Verbose should be set")
	}
	wantJars := []string{filepath.Join(dir, "lib/scala-library-2.8.0.jar"), "/abs/x.jar"}
	if !reflect.DeepEqual(c.Dependencies.Jars, wantJars) {
		t.Errorf("Jars = %v, want %v", c.Dependencies.Jars, wantJars)
	}
	if c.Dependencies.ClasspathFile != filepath.Join(dir, "cp.txt") {
		t.Errorf("ClasspathFile = %q", c.Dependencies.ClasspathFile)
	}
	if c.ProGuard.Jar != filepath.Join(dir, "tools/proguard.jar") {
		t.Errorf("ProGuard.Jar = %q", c.ProGuard.Jar)
	}
	if !c.CacheEnabled() {
		t.Error("CacheEnabled() = false")
	}
	if got := c.CacheTTL(time.Hour); got != 24*time.Hour {
		t.Errorf("CacheTTL = %v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", `entry_points = [`, errors.ErrCodeConfigParse},
		{"unknown key", `entrypoints = ["a.B"]`, errors.ErrCodeConfigParse},
		{"bad layout", `layout = "flat"`, errors.ErrCodeConfiguration},
		{"bad ttl", "[cache]\nttl = \"soon\"", errors.ErrCodeConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestValidateEntryPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `entry_points = ["com.example.Main", "com.example.9Main"]`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not check entry point names: %v", err)
	}
	if err := c.ValidateEntryPoints(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("ValidateEntryPoints() error = %v, want CONFIGURATION", err)
	}

	c.EntryPoints = []string{"com.example.Main", "com.example.Outer$Inner"}
	if err := c.ValidateEntryPoints(); err != nil {
		t.Errorf("ValidateEntryPoints() = %v", err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	if _, ok := Find(dir); ok {
		t.Error("Find in empty dir should fail")
	}
	writeFile(t, filepath.Join(dir, FileName), "")
	if path, ok := Find(dir); !ok || path != filepath.Join(dir, FileName) {
		t.Errorf("Find = %q, %v", path, ok)
	}
}

func TestDefault(t *testing.T) {
	c := Default("/proj")
	if c.Packaging != maven.LiberatedJar {
		t.Errorf("Packaging = %q", c.Packaging)
	}
	if !c.IsEnabled() {
		t.Error("enabled should default to true")
	}
	if c.CacheEnabled() {
		t.Error("cache should default to off")
	}
	if got := c.ResolvedOutputDir(); got != filepath.Join("/proj", "target", "classes") {
		t.Errorf("ResolvedOutputDir = %q", got)
	}
	if c.LiberateFrom != nil {
		t.Error("LiberateFrom should be nil so classification uses its defaults")
	}
}

func TestOverlay(t *testing.T) {
	base := Default("/proj")
	base.EntryPoints = []string{"a.Main"}
	base.Dependencies.Jars = []string{"/a.jar"}

	base.Overlay(&Config{
		BuildDir:     "/proj/build",
		LiberateFrom: []string{},
		Enabled:      Bool(false),
		Filter:       String(""),
		Dependencies: Dependencies{Jars: []string{"/b.jar"}},
	})

	if base.BuildDir != "/proj/build" {
		t.Errorf("BuildDir = %q", base.BuildDir)
	}
	if base.Packaging != maven.LiberatedJar {
		t.Error("unset Packaging should not override")
	}
	if !reflect.DeepEqual(base.EntryPoints, []string{"a.Main"}) {
		t.Errorf("EntryPoints = %v", base.EntryPoints)
	}
	if base.LiberateFrom == nil {
		t.Error("explicitly empty LiberateFrom should override")
	}
	if base.IsEnabled() {
		t.Error("Enabled=false should override")
	}
	if base.Filter == nil {
		t.Error("explicitly empty Filter should override")
	}
	if !reflect.DeepEqual(base.Dependencies.Jars, []string{"/a.jar", "/b.jar"}) {
		t.Errorf("Jars = %v", base.Dependencies.Jars)
	}

	base.Overlay(nil)
}

func TestFromPOM(t *testing.T) {
	pom, err := maven.ParsePOM([]byte(`<project>
  <artifactId>app</artifactId>
  <packaging>liberated-jar</packaging>
  <build>
    <plugins>
      <plugin>
        <groupId>com.lafros.maven.plugins</groupId>
        <configuration>
          <entryPoints><param>com.example.Main</param></entryPoints>
          <enabled>false</enabled>
        </configuration>
      </plugin>
    </plugins>
  </build>
</project>`), "/proj")
	if err != nil {
		t.Fatal(err)
	}

	c := FromPOM(pom)
	if c.Packaging != maven.LiberatedJar {
		t.Errorf("Packaging = %q", c.Packaging)
	}
	if c.BuildDir != filepath.Join("/proj", "target") {
		t.Errorf("BuildDir = %q", c.BuildDir)
	}
	if c.OutputDir != filepath.Join("/proj", "target", "classes") {
		t.Errorf("OutputDir = %q", c.OutputDir)
	}
	if !reflect.DeepEqual(c.EntryPoints, []string{"com.example.Main"}) {
		t.Errorf("EntryPoints = %v", c.EntryPoints)
	}
	if c.IsEnabled() {
		t.Error("enabled=false in pom should disable")
	}
}

func TestArtifacts(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "dependency")
	writeFile(t, filepath.Join(libDir, "scala-swing-2.8.0.jar"), "")
	writeFile(t, filepath.Join(libDir, "notes.txt"), "")
	cp := filepath.Join(dir, "cp.txt")
	writeFile(t, cp, "/m2/a.jar"+string(os.PathListSeparator)+"/proj/target/classes\n")

	c := &Config{Dependencies: Dependencies{
		Jars:          []string{"/m2/scala-library-2.8.0.jar"},
		Dirs:          []string{libDir},
		ClasspathFile: cp,
	}}
	arts, err := c.Artifacts()
	if err != nil {
		t.Fatalf("Artifacts: %v", err)
	}

	var got []string
	for _, a := range arts {
		got = append(got, a.Path)
	}
	want := []string{"/m2/scala-library-2.8.0.jar", filepath.Join(libDir, "scala-swing-2.8.0.jar"), "/m2/a.jar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Artifacts = %v, want %v", got, want)
	}

	c.Dependencies.Dirs = []string{filepath.Join(dir, "nope")}
	if _, err := c.Artifacts(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing dir error = %v", err)
	}
}
