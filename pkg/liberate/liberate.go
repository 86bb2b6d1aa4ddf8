package liberate

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/liberate/pkg/artifact"
	"github.com/matzehuels/liberate/pkg/cache"
	"github.com/matzehuels/liberate/pkg/errors"
	"github.com/matzehuels/liberate/pkg/jar"
	"github.com/matzehuels/liberate/pkg/maven"
	"github.com/matzehuels/liberate/pkg/observability"
	"github.com/matzehuels/liberate/pkg/proguard"
)

// Parameters are the goal's tunables.
type Parameters struct {
	LibraryJars  []string // nil or empty selects proguard.DefaultLibraryJar
	LiberateFrom []string // nil selects artifact.DefaultLiberateFrom
	AlsoSupport  []string
	Filter       string
	EntryPoints  []string

	SuppressNotes    bool
	SuppressWarnings bool
	Verbose          bool
}

// Request describes one run.
type Request struct {
	Packaging string
	Enabled   bool

	BuildDir            string
	OutputDir           string // the project's compiled classes
	LiberatedClassesDir string // separate layout destination; empty for the default
	Layout              Layout

	Dependencies []artifact.Artifact
	Parameters

	// Refresh ignores cached staging jars (they are still written).
	Refresh bool
}

// Result reports what a run did.
type Result struct {
	// Skipped holds the reason the goal did nothing; empty when it ran.
	Skipped string

	Classification artifact.Classification
	Directives     []string
	ConfigFile     string
	StagingJar     string
	Destination    string
	Extract        jar.Stats
	CacheHit       bool

	Stats struct {
		ShrinkTime  time.Duration
		ExtractTime time.Duration
	}
}

// Liberator executes requests. It holds no per-run state.
type Liberator struct {
	Shrinker proguard.Shrinker
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *log.Logger
}

// NewLiberator creates a liberator.
// If shrinker is nil, ProGuard is run from PATH.
// If c is nil, a NullCache is used (caching disabled).
func NewLiberator(shrinker proguard.Shrinker, c cache.Cache, logger *log.Logger) *Liberator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if shrinker == nil {
		shrinker = &proguard.ExecShrinker{Logger: logger}
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Liberator{
		Shrinker: shrinker,
		Cache:    c,
		CacheTTL: cache.DefaultTTL,
		Logger:   logger,
	}
}

// SkipReason returns why a run with this packaging and enabled flag does
// nothing, or "" when it runs. It depends on nothing else, so callers can
// decide before resolving any input.
func SkipReason(packaging string, enabled bool) string {
	if packaging != maven.LiberatedJar {
		return fmt.Sprintf("packaging is %s, not %s", packaging, maven.LiberatedJar)
	}
	if !enabled {
		return "liberate goal disabled"
	}
	return ""
}

// Plan performs the steps of Execute that touch nothing: skip checks,
// classification and directive building. A skipped plan has a non-empty
// Skipped and no directives.
func (l *Liberator) Plan(req Request) (*Result, Paths, error) {
	if reason := SkipReason(req.Packaging, req.Enabled); reason != "" {
		return &Result{Skipped: reason}, Paths{}, nil
	}

	paths, err := req.Layout.Paths(req.BuildDir, req.OutputDir, req.LiberatedClassesDir)
	if err != nil {
		return nil, Paths{}, err
	}

	c := artifact.Classify(req.Dependencies, req.LiberateFrom, req.AlsoSupport)
	directives, err := proguard.BuildConfiguration(proguard.Params{
		BaseDir:          paths.BaseDir,
		ProjectOutput:    req.OutputDir,
		Liberate:         c.LiberatePaths(),
		Support:          c.SupportPaths(),
		Filter:           req.Filter,
		LibraryJars:      req.LibraryJars,
		EntryPoints:      req.EntryPoints,
		DiscardName:      paths.DiscardName,
		StagingName:      paths.StagingName,
		SuppressNotes:    req.SuppressNotes,
		SuppressWarnings: req.SuppressWarnings,
		Verbose:          req.Verbose,
	})
	if err != nil {
		return nil, Paths{}, err
	}

	return &Result{
		Classification: c,
		Directives:     directives,
		ConfigFile:     paths.ConfigFile(),
		StagingJar:     paths.StagingJar(),
		Destination:    paths.Destination,
	}, paths, nil
}

// Execute runs the goal. A skipped run returns a Result with Skipped set
// and a nil error.
func (l *Liberator) Execute(ctx context.Context, req Request) (*Result, error) {
	result, paths, err := l.Plan(req)
	if err != nil {
		return nil, err
	}
	if result.Skipped != "" {
		l.Logger.Info(result.Skipped)
		return result, nil
	}

	c := result.Classification
	observability.Liberate().OnClassify(ctx, len(c.Liberate), len(c.Support), len(c.Ignored))
	l.Logger.Debug("classified dependencies",
		"liberate", len(c.Liberate),
		"support", len(c.Support),
		"ignored", len(c.Ignored))

	if req.Verbose {
		for _, d := range result.Directives {
			l.Logger.Info("arg: " + d)
		}
	}

	if err := writeConfig(paths.BaseDir, result.ConfigFile, result.Directives); err != nil {
		return nil, err
	}
	if req.Verbose {
		l.Logger.Info("parsing configuration...")
	}
	conf, err := proguard.Parse(result.Directives)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "ProGuard was unable to parse configuration")
	}
	if req.Verbose {
		l.Logger.Info("ok")
	}

	shrinkStart := time.Now()
	hit, err := l.shrink(ctx, conf, result, req.Refresh)
	result.Stats.ShrinkTime = time.Since(shrinkStart)
	if err != nil {
		return nil, err
	}
	result.CacheHit = hit

	if req.Verbose {
		l.Logger.Info("copying required classes from " + result.StagingJar)
	}
	extractStart := time.Now()
	stats, err := jar.Extract(ctx, result.StagingJar, result.Destination, jar.Options{Logger: l.Logger, Verbose: req.Verbose})
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Extract = stats
	observability.Liberate().OnExtractComplete(ctx, stats.Files, stats.Bytes, result.Stats.ExtractTime, err)
	if err != nil {
		return nil, err
	}

	l.Logger.Info("liberated classes",
		"files", stats.Files,
		"destination", result.Destination,
		"duration", result.Stats.ShrinkTime+result.Stats.ExtractTime)
	return result, nil
}

// writeConfig writes liberate.pro, creating the base directory if needed.
func writeConfig(baseDir, path string, directives []string) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryCreation, err, "unable to create directory: %s", baseDir)
	}
	if err := proguard.WriteFile(path, directives); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "ProGuard was unable to create parser")
	}
	return nil
}

// shrink produces the staging jar, from the cache when possible. It
// reports whether the cache served it.
func (l *Liberator) shrink(ctx context.Context, conf *proguard.Configuration, result *Result, refresh bool) (bool, error) {
	key := ""
	if !cache.IsNull(l.Cache) {
		key = cache.StagingKey(result.Directives, stamps(conf))
		if !refresh {
			if data, ok, err := l.Cache.Get(ctx, key); err == nil && ok {
				if err := os.WriteFile(result.StagingJar, data, 0644); err != nil {
					return false, errors.Wrap(errors.ErrCodeIO, err, "unable to restore staging jar %s", result.StagingJar)
				}
				observability.Cache().OnCacheHit(ctx, "staging")
				l.Logger.Debug("staging jar restored from cache", "key", key)
				return true, nil
			} else if err != nil {
				l.Logger.Warn("cache read failed", "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, "staging")
		}
	}

	observability.Liberate().OnShrinkStart(ctx, len(result.Directives))
	start := time.Now()
	err := l.Shrinker.Shrink(ctx, conf, result.ConfigFile)
	if err != nil && ctx.Err() == nil && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.ErrCodeIO, err, "ProGuard was unable to process the configuration")
	}
	observability.Liberate().OnShrinkComplete(ctx, time.Since(start), err)
	if err != nil {
		return false, err
	}

	if key != "" {
		data, err := os.ReadFile(result.StagingJar)
		if err == nil {
			err = l.Cache.Set(ctx, key, data, l.CacheTTL)
		}
		if err != nil {
			l.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "staging", len(data))
		}
	}
	return false, nil
}
