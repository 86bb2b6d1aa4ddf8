package artifact

import (
	"reflect"
	"testing"
)

func names(arts []Artifact) []string {
	var out []string
	for _, a := range arts {
		out = append(out, a.FileName())
	}
	return out
}

func TestClassify_Defaults(t *testing.T) {
	deps := []Artifact{
		New("/repo/scala-library-2.8.jar"),
		New("/repo/commons-io-1.4.jar"),
	}

	c := Classify(deps, nil, nil)

	if got := names(c.Liberate); !reflect.DeepEqual(got, []string{"scala-library-2.8.jar"}) {
		t.Errorf("Liberate = %v, want [scala-library-2.8.jar]", got)
	}
	if len(c.Support) != 0 {
		t.Errorf("Support = %v, want empty", names(c.Support))
	}
	if got := names(c.Ignored); !reflect.DeepEqual(got, []string{"commons-io-1.4.jar"}) {
		t.Errorf("Ignored = %v, want [commons-io-1.4.jar]", got)
	}
}

func TestClassify_AlsoSupport(t *testing.T) {
	deps := []Artifact{
		New("/repo/scala-library-2.8.jar"),
		New("/repo/commons-io-1.4.jar"),
	}

	c := Classify(deps, nil, []string{"commons-"})

	if got := names(c.Support); !reflect.DeepEqual(got, []string{"commons-io-1.4.jar"}) {
		t.Errorf("Support = %v, want [commons-io-1.4.jar]", got)
	}
	if len(c.Ignored) != 0 {
		t.Errorf("Ignored = %v, want empty", names(c.Ignored))
	}
}

func TestClassify_LiberateBeforeSupport(t *testing.T) {
	deps := []Artifact{New("/repo/scala-swing-2.8.jar")}

	// Matches both lists; liberate-from is consulted first.
	c := Classify(deps, []string{"scala-swing-"}, []string{"scala-"})

	if len(c.Liberate) != 1 || len(c.Support) != 0 {
		t.Errorf("Liberate=%v Support=%v, want swing in Liberate only", names(c.Liberate), names(c.Support))
	}
}

func TestClassify_MultipleSupportPrefixesAddOnce(t *testing.T) {
	deps := []Artifact{New("/repo/scalaz-core-5.0.jar")}

	c := Classify(deps, []string{}, []string{"scalaz-", "scalaz-core-"})

	if len(c.Support) != 1 {
		t.Errorf("Support = %v, want exactly one entry", names(c.Support))
	}
}

func TestClassify_EmptyLiberateFromDisablesDefaults(t *testing.T) {
	deps := []Artifact{New("/repo/scala-library-2.8.jar")}

	c := Classify(deps, []string{}, nil)

	if len(c.Liberate) != 0 {
		t.Errorf("Liberate = %v, want empty", names(c.Liberate))
	}
	if len(c.Ignored) != 1 {
		t.Errorf("Ignored = %v, want the scala jar", names(c.Ignored))
	}
}

func TestClassify_MatchesFileNameNotDirectory(t *testing.T) {
	deps := []Artifact{New("/scala-library-cache/commons-io-1.4.jar")}

	c := Classify(deps, nil, nil)

	if len(c.Liberate) != 0 {
		t.Errorf("directory name should not match: Liberate = %v", names(c.Liberate))
	}
}

func TestClassify_ExactlyOneBucket(t *testing.T) {
	deps := []Artifact{
		New("/a/scala-library-2.8.jar"),
		New("/a/scala-swing-2.8.jar"),
		New("/a/scalacheck-1.7.jar"),
		New("/a/junit-4.8.jar"),
		New("/a/commons-io-1.4.jar"),
	}
	liberate := []string{"scala-library-", "scala-swing-"}
	support := []string{"scala", "commons-"}

	c := Classify(deps, liberate, support)

	total := len(c.Liberate) + len(c.Support) + len(c.Ignored)
	if total != len(deps) {
		t.Fatalf("buckets hold %d artifacts, want %d", total, len(deps))
	}

	want := map[string]string{
		"scala-library-2.8.jar": "liberate",
		"scala-swing-2.8.jar":   "liberate",
		"scalacheck-1.7.jar":    "support",
		"commons-io-1.4.jar":    "support",
		"junit-4.8.jar":         "ignored",
	}
	got := map[string]string{}
	for _, a := range c.Liberate {
		got[a.FileName()] = "liberate"
	}
	for _, a := range c.Support {
		got[a.FileName()] = "support"
	}
	for _, a := range c.Ignored {
		got[a.FileName()] = "ignored"
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("classification = %v, want %v", got, want)
	}
}

func TestClassify_PreservesOrderAndDedupes(t *testing.T) {
	deps := []Artifact{
		New("/a/scala-swing-2.8.jar"),
		New("/a/scala-library-2.8.jar"),
		New("/a/scala-swing-2.8.jar"),
	}

	c := Classify(deps, nil, nil)

	want := []string{"/a/scala-swing-2.8.jar", "/a/scala-library-2.8.jar"}
	if got := c.LiberatePaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("LiberatePaths() = %v, want %v", got, want)
	}
}

func TestFromPaths(t *testing.T) {
	got := FromPaths([]string{"/a/x.jar", "  ", "/b/y.jar"})
	if len(got) != 2 {
		t.Fatalf("FromPaths len = %d, want 2", len(got))
	}
	if got[0].Name != "x.jar" || got[1].Path != "/b/y.jar" {
		t.Errorf("FromPaths = %+v", got)
	}
}
