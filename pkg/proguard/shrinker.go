package proguard

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/liberate/pkg/errors"
)

// Shrinker executes a parsed configuration. proFile is the configuration
// written with WriteFile; implementations may read either.
type Shrinker interface {
	Shrink(ctx context.Context, conf *Configuration, proFile string) error
}

// ExecShrinker runs ProGuard as a subprocess:
//
//	java -jar <Jar> @<proFile>
//
// When Jar is empty the "proguard" launcher shipped with ProGuard
// distributions is looked up on PATH instead.
type ExecShrinker struct {
	Java   string      // java binary; defaults to $JAVA_HOME/bin/java, then "java"
	Jar    string      // path to proguard.jar
	Logger *log.Logger // receives the tool's output; nil discards it
}

// Shrink implements Shrinker. The working directory is the configuration's
// base directory. A missing launcher, a non-zero exit, or a declared output
// jar that was not written fails with IO_ERROR.
func (s *ExecShrinker) Shrink(ctx context.Context, conf *Configuration, proFile string) error {
	name, args, err := s.command(proFile)
	if err != nil {
		return err
	}

	logger := s.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	level := log.DebugLevel
	if conf.Verbose {
		level = log.InfoLevel
	}
	out := &lineWriter{logger: logger, level: level}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = conf.BaseDir
	cmd.Stdout = out
	cmd.Stderr = out

	logger.Debug("running ProGuard", "command", name, "args", strings.Join(args, " "), "dir", cmd.Dir)
	runErr := cmd.Run()
	out.Flush()
	if runErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := "ProGuard was unable to process the configuration"
		if last := out.Last(); last != "" {
			msg += ": " + last
		}
		return errors.Wrap(errors.ErrCodeIO, runErr, "%s", msg)
	}

	for _, e := range conf.OutputJars() {
		p := conf.Resolve(e.Path)
		if _, err := os.Stat(p); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "ProGuard did not write %s", p)
		}
	}
	return nil
}

func (s *ExecShrinker) command(proFile string) (string, []string, error) {
	arg := "@" + proFile
	if s.Jar != "" {
		if _, err := os.Stat(s.Jar); err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "ProGuard jar %s", s.Jar)
		}
		return s.java(), []string{"-jar", s.Jar, arg}, nil
	}
	for _, launcher := range []string{"proguard", "proguard.sh"} {
		if p, err := exec.LookPath(launcher); err == nil {
			return p, []string{arg}, nil
		} else if !stderrors.Is(err, exec.ErrNotFound) {
			return "", nil, errors.Wrap(errors.ErrCodeIO, err, "look up %s", launcher)
		}
	}
	return "", nil, errors.New(errors.ErrCodeConfiguration, "no ProGuard found: set proguard.jar or put the proguard launcher on PATH")
}

func (s *ExecShrinker) java() string {
	if s.Java != "" {
		return s.Java
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		return filepath.Join(home, "bin", "java")
	}
	return "java"
}

// lineWriter forwards subprocess output to a logger one line at a time and
// remembers the last non-empty line for error messages.
type lineWriter struct {
	logger *log.Logger
	level  log.Level

	mu   sync.Mutex
	buf  bytes.Buffer
	last string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(w.buf.Next(i + 1))
		w.emit(line)
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

// Last returns the last non-empty line written.
func (w *lineWriter) Last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	w.last = line
	w.logger.Log(w.level, line, "tool", "proguard")
}
