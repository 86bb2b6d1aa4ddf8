package proguard

import (
	"bufio"
	"os"
	"strings"

	"github.com/matzehuels/liberate/pkg/errors"
)

// WriteFile writes directives to a ProGuard configuration file, one per
// line, so the tool can be pointed at it with "@path".
func WriteFile(path string, directives []string) error {
	var b strings.Builder
	b.WriteString("# Generated by liberate. Changes are overwritten on the next run.\n")
	for _, d := range directives {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write configuration %s", path)
	}
	return nil
}

// ReadFile reads a configuration file back into a directive list. Comments
// and blank lines are dropped.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open configuration %s", path)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read configuration %s", path)
	}
	return out, nil
}
