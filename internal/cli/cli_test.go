package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/liberate/pkg/cache"
	"github.com/matzehuels/liberate/pkg/config"
	"github.com/matzehuels/liberate/pkg/jar"
	"github.com/matzehuels/liberate/pkg/observability"
	"github.com/matzehuels/liberate/pkg/proguard"
)

// fakeShrinker writes a small staging jar instead of running ProGuard.
type fakeShrinker struct {
	calls int
}

func (f *fakeShrinker) Shrink(ctx context.Context, conf *proguard.Configuration, proFile string) error {
	f.calls++
	outs := conf.OutputJars()
	return jar.WriteEntries(conf.Resolve(outs[len(outs)-1].Path), []jar.Entry{
		{Name: "scala/ScalaObject.class", Data: []byte("cafebabe")},
		{Name: "com/example/Main.class", Data: []byte("cafebabe")},
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newProject creates a project directory with a liberate.toml naming two
// dependency jars.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), `
entry_points = ["com.example.Main"]

[dependencies]
jars = ["lib/scala-library-2.8.0.jar", "lib/junit-4.8.jar"]
`)
	return dir
}

// execute runs the CLI with args and returns what it wrote to its output.
func execute(t *testing.T, shrinker proguard.Shrinker, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.Shrinker = shrinker
	c.Out = &out

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigCommand(t *testing.T) {
	dir := newProject(t)

	out, err := execute(t, nil, "config", "-C", dir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"-basedirectory " + filepath.Join(dir, "target"),
		"-injar " + filepath.Join(dir, "target", "classes"),
		"-injar " + filepath.Join(dir, "lib", "scala-library-2.8.0.jar"),
		"-outjar liberated-staging.jar",
		"-libraryjars <java.home>/lib/rt.jar",
		"-keep public class com.example.Main {*;}",
		"-ignorewarnings",
		"-dontoptimize",
		"-dontobfuscate",
		"-dontpreverify",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("config output:\n%s\nwant:\n%s", out, strings.Join(want, "\n"))
	}
}

func TestConfigCommand_FlagsOverride(t *testing.T) {
	dir := newProject(t)

	out, err := execute(t, nil, "config", "-C", dir,
		"-e", "com.example.Other",
		"--library-jar", "/jdk/classes.jar",
		"--layout", "in-place",
		"--suppress-notes")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{
		"-keep public class com.example.Other {*;}",
		"-libraryjars /jdk/classes.jar",
		"-outjar onlyThoseRequired.jar",
		"-dontnote",
	} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "com.example.Main") {
		t.Error("flag entry points should replace the configured ones")
	}
}

func TestConfigCommand_WriteFile(t *testing.T) {
	dir := newProject(t)
	pro := filepath.Join(dir, "out.pro")

	if _, err := execute(t, nil, "config", "-C", dir, "-o", pro); err != nil {
		t.Fatalf("config: %v", err)
	}
	directives, err := proguard.ReadFile(pro)
	if err != nil {
		t.Fatal(err)
	}
	if len(directives) != 10 {
		t.Errorf("read %d directives, want 10", len(directives))
	}
}

func TestConfigCommand_NoEntryPoints(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, nil, "config", "-C", dir)
	if err == nil || !strings.Contains(err.Error(), "Please supply entryPoints.") {
		t.Errorf("error = %v, want entry point error", err)
	}
}

func TestClassifyCommand(t *testing.T) {
	dir := newProject(t)

	out, err := execute(t, nil, "classify", "-C", dir, "--also-support", "junit-")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	want := "liberate\t" + filepath.Join(dir, "lib", "scala-library-2.8.0.jar") + "\n" +
		"support\t" + filepath.Join(dir, "lib", "junit-4.8.jar") + "\n"
	if out != want {
		t.Errorf("classify output = %q, want %q", out, want)
	}
}

func TestRunCommand(t *testing.T) {
	dir := newProject(t)
	shrinker := &fakeShrinker{}

	if _, err := execute(t, shrinker, "run", "-C", dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	if shrinker.calls != 1 {
		t.Errorf("shrinker calls = %d", shrinker.calls)
	}
	for _, p := range []string{
		filepath.Join(dir, "target", "liberate.pro"),
		filepath.Join(dir, "target", "liberated-classes", "scala", "ScalaObject.class"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
}

func TestRunCommand_Cache(t *testing.T) {
	dir := newProject(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")
	writeFile(t, filepath.Join(dir, config.FileName), `
entry_points = ["com.example.Main"]

[dependencies]
jars = ["lib/scala-library-2.8.0.jar"]

[cache]
enabled = true
dir = "`+filepath.ToSlash(cacheDir)+`"
`)
	shrinker := &fakeShrinker{}

	for i := 0; i < 2; i++ {
		if _, err := execute(t, shrinker, "run", "-C", dir); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if shrinker.calls != 1 {
		t.Errorf("second run should come from cache, shrinker calls = %d", shrinker.calls)
	}

	if _, err := execute(t, shrinker, "run", "-C", dir, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	if shrinker.calls != 2 {
		t.Errorf("--no-cache should run the shrinker, calls = %d", shrinker.calls)
	}
}

func TestRunCommand_SkipsPlainJarPackaging(t *testing.T) {
	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "pom.xml"), `<project>
  <artifactId>app</artifactId>
  <packaging>jar</packaging>
</project>`)
	shrinker := &fakeShrinker{}

	if _, err := execute(t, shrinker, "run", "-C", dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	if shrinker.calls != 0 {
		t.Error("shrinker ran for jar packaging")
	}
	if _, err := os.Stat(filepath.Join(dir, "target")); !os.IsNotExist(err) {
		t.Error("skipped run created the build directory")
	}

	if _, err := execute(t, shrinker, "run", "-C", dir, "--no-pom"); err != nil {
		t.Fatalf("run --no-pom: %v", err)
	}
	if shrinker.calls != 1 {
		t.Error("--no-pom should fall back to liberated-jar packaging")
	}
}

func TestRunCommand_SkipIgnoresUnusedInputs(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"jar packaging, missing deps dir", `
packaging = "jar"
entry_points = ["com.example.Main"]

[dependencies]
dirs = ["target/dependency"]

[cache]
enabled = true
dir = "cache"
`},
		{"disabled, wildcard entry point", `
enabled = false
entry_points = ["com.example.*"]

[dependencies]
dirs = ["target/dependency"]
classpath_file = "target/classpath.txt"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, config.FileName), tt.config)
			shrinker := &fakeShrinker{}

			for _, cmd := range []string{"run", "config"} {
				if _, err := execute(t, shrinker, cmd, "-C", dir); err != nil {
					t.Errorf("%s: skipped project failed: %v", cmd, err)
				}
			}
			if shrinker.calls != 0 {
				t.Error("shrinker ran for a skipped project")
			}
			for _, p := range []string{"target", "cache"} {
				if _, err := os.Stat(filepath.Join(dir, p)); !os.IsNotExist(err) {
					t.Errorf("skipped run created %s", p)
				}
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := execute(t, nil, "cache", "path", "--cache-dir", "/tmp/liberate-cache")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "/tmp/liberate-cache" {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("cleared %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir not empty: %v", entries)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err = cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	cfg := config.Default(t.TempDir())
	c, err := newCache(cfg, false)
	if err != nil || !cache.IsNull(c) {
		t.Errorf("default cache = %T, %v; want NullCache", c, err)
	}

	cfg.Cache.Enabled = config.Bool(true)
	cfg.Cache.Dir = t.TempDir()
	if c, err := newCache(cfg, false); err != nil || cache.IsNull(c) {
		t.Errorf("enabled cache = %T, %v", c, err)
	}
	if c, _ := newCache(cfg, true); !cache.IsNull(c) {
		t.Error("noCache should win over the configuration")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
