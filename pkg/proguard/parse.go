package proguard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/liberate/pkg/errors"
)

// ClassPathEntry is one jar or directory on the program or library class path.
type ClassPathEntry struct {
	Path   string // as written in the directive, possibly relative to BaseDir
	Filter string // contents of the trailing (...) filter, without parentheses
	Output bool   // true for -outjars entries
}

// KeepSpec is a parsed -keep class specification.
type KeepSpec struct {
	Modifiers  []string // e.g. ["public"]
	Type       string   // "class", "interface" or "enum"
	ClassName  string
	MemberSpec string // contents between { and }, empty if absent
}

// Configuration is the subset of ProGuard's configuration model that a
// liberate run uses.
type Configuration struct {
	BaseDir     string
	ProgramJars []ClassPathEntry
	LibraryJars []ClassPathEntry
	Keep        []KeepSpec

	Shrink         bool
	Optimize       bool
	Obfuscate      bool
	Preverify      bool
	IgnoreWarnings bool
	Note           bool
	Warn           bool
	Verbose        bool

	// Directives is the list the configuration was parsed from.
	Directives []string
}

// InputJars returns the program class path entries that are read.
func (c *Configuration) InputJars() []ClassPathEntry {
	return c.filter(false)
}

// OutputJars returns the program class path entries that are written.
func (c *Configuration) OutputJars() []ClassPathEntry {
	return c.filter(true)
}

func (c *Configuration) filter(output bool) []ClassPathEntry {
	var out []ClassPathEntry
	for _, e := range c.ProgramJars {
		if e.Output == output {
			out = append(out, e)
		}
	}
	return out
}

// Resolve returns p relative to the base directory unless it is absolute.
func (c *Configuration) Resolve(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// options lists the full option names in the order ProGuard's parser tries
// them. A directive keyword selects the first option it is a prefix of, so
// "-injar" selects "-injars".
var options = []string{
	"-basedirectory",
	"-injars",
	"-outjars",
	"-libraryjars",
	"-keep",
	"-dontshrink",
	"-dontoptimize",
	"-dontobfuscate",
	"-dontpreverify",
	"-verbose",
	"-dontnote",
	"-dontwarn",
	"-ignorewarnings",
}

func lookupOption(word string) (string, bool) {
	if len(word) < 2 || word[0] != '-' {
		return "", false
	}
	for _, o := range options {
		if o == word {
			return o, true
		}
	}
	for _, o := range options {
		if strings.HasPrefix(o, word) {
			return o, true
		}
	}
	return "", false
}

// Parse reads directives into a Configuration. Blank lines and lines
// starting with '#' are skipped. Any syntax ProGuard would reject for the
// supported options fails with CONFIG_PARSE.
func Parse(directives []string) (*Configuration, error) {
	c := &Configuration{
		Shrink:     true,
		Optimize:   true,
		Obfuscate:  true,
		Preverify:  true,
		Note:       true,
		Warn:       true,
		Directives: append([]string(nil), directives...),
	}

	for i, d := range directives {
		line := strings.TrimSpace(d)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, arg := splitDirective(line)
		opt, ok := lookupOption(word)
		if !ok {
			return nil, parseError(i, line, "unknown option %q", word)
		}

		switch opt {
		case "-basedirectory":
			if arg == "" {
				return nil, parseError(i, line, "expecting directory name after %s", word)
			}
			c.BaseDir = arg

		case "-injars", "-outjars":
			e, err := parseClassPathEntry(arg)
			if err != nil {
				return nil, parseError(i, line, "%s", errors.UserMessage(err))
			}
			e.Output = opt == "-outjars"
			if e.Output && len(c.InputJars()) == 0 {
				return nil, parseError(i, line, "the output jar [%s] must be specified after an input jar, or it will be empty", e.Path)
			}
			c.ProgramJars = append(c.ProgramJars, e)

		case "-libraryjars":
			e, err := parseClassPathEntry(arg)
			if err != nil {
				return nil, parseError(i, line, "%s", errors.UserMessage(err))
			}
			c.LibraryJars = append(c.LibraryJars, e)

		case "-keep":
			k, err := parseKeep(arg)
			if err != nil {
				return nil, parseError(i, line, "%s", errors.UserMessage(err))
			}
			c.Keep = append(c.Keep, k)

		case "-dontnote", "-dontwarn":
			// Both accept an optional class filter, which disables the
			// messages only for matching classes. A bare option disables all.
			if arg == "" {
				if opt == "-dontnote" {
					c.Note = false
				} else {
					c.Warn = false
				}
			}

		default:
			if arg != "" {
				return nil, parseError(i, line, "option %s takes no argument", opt)
			}
			switch opt {
			case "-dontshrink":
				c.Shrink = false
			case "-dontoptimize":
				c.Optimize = false
			case "-dontobfuscate":
				c.Obfuscate = false
			case "-dontpreverify":
				c.Preverify = false
			case "-verbose":
				c.Verbose = true
			case "-ignorewarnings":
				c.IgnoreWarnings = true
			}
		}
	}

	if len(c.InputJars()) == 0 {
		return nil, errors.New(errors.ErrCodeConfigParse, "the input is empty; specify one or more -injars options")
	}
	if len(c.OutputJars()) == 0 {
		return nil, errors.New(errors.ErrCodeConfigParse, "no output jar; specify one or more -outjars options")
	}
	if c.Shrink && len(c.Keep) == 0 {
		return nil, errors.New(errors.ErrCodeConfigParse, "specify -keep options for the shrinking step")
	}
	return c, nil
}

func parseError(index int, line, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.New(errors.ErrCodeConfigParse, "%s in directive %d (%s)", msg, index+1, line)
}

// parseClassPathEntry splits "path(filter)" into its parts.
func parseClassPathEntry(arg string) (ClassPathEntry, error) {
	if arg == "" {
		return ClassPathEntry{}, errors.New(errors.ErrCodeConfigParse, "expecting jar or directory name")
	}
	open := strings.IndexByte(arg, '(')
	if open < 0 {
		if strings.ContainsRune(arg, ')') {
			return ClassPathEntry{}, errors.New(errors.ErrCodeConfigParse, "unexpected ')' in %q", arg)
		}
		return ClassPathEntry{Path: arg}, nil
	}
	if !strings.HasSuffix(arg, ")") {
		return ClassPathEntry{}, errors.New(errors.ErrCodeConfigParse, "expecting separating ')' at end of filter in %q", arg)
	}
	path := strings.TrimSpace(arg[:open])
	if path == "" {
		return ClassPathEntry{}, errors.New(errors.ErrCodeConfigParse, "expecting jar or directory name before filter in %q", arg)
	}
	filter := strings.TrimSpace(arg[open+1 : len(arg)-1])
	if strings.ContainsAny(filter, "()") {
		return ClassPathEntry{}, errors.New(errors.ErrCodeConfigParse, "nested parentheses in filter %q", arg)
	}
	return ClassPathEntry{Path: path, Filter: filter}, nil
}

// parseKeep reads "[modifiers] class|interface|enum name [{ members }]".
func parseKeep(arg string) (KeepSpec, error) {
	var k KeepSpec

	body := arg
	if open := strings.IndexByte(arg, '{'); open >= 0 {
		if !strings.HasSuffix(arg, "}") || strings.Count(arg, "{") != 1 || strings.Count(arg, "}") != 1 {
			return k, errors.New(errors.ErrCodeConfigParse, "unbalanced member specification in %q", arg)
		}
		k.MemberSpec = strings.TrimSpace(arg[open+1 : len(arg)-1])
		body = arg[:open]
	} else if strings.ContainsRune(arg, '}') {
		return k, errors.New(errors.ErrCodeConfigParse, "unexpected '}' in %q", arg)
	}

	words := strings.Fields(body)
	for i, w := range words {
		switch w {
		case "class", "interface", "enum":
			rest := words[i+1:]
			if len(rest) == 0 {
				return k, errors.New(errors.ErrCodeConfigParse, "expecting class name after %q", w)
			}
			if len(rest) > 1 && rest[1] != "extends" && rest[1] != "implements" {
				return k, errors.New(errors.ErrCodeConfigParse, "unexpected %q after class name", rest[1])
			}
			k.Type = w
			k.ClassName = rest[0]
			k.Modifiers = words[:i]
			return k, nil
		}
		if !isModifier(w) {
			return k, errors.New(errors.ErrCodeConfigParse, "unexpected %q in class specification", w)
		}
	}
	return k, errors.New(errors.ErrCodeConfigParse, "expecting keyword 'class', 'interface', or 'enum' in %q", arg)
}

func isModifier(w string) bool {
	switch strings.TrimPrefix(w, "!") {
	case "public", "final", "abstract", "@interface":
		return true
	}
	return strings.HasPrefix(w, "@")
}
