// Package pkg provides the libraries behind the liberate tool.
//
// # Overview
//
// Liberate pulls the classes a project actually uses out of large runtime
// jars (the Scala library by default) so the packaged artifact does not have
// to ship the whole runtime. The data flow is:
//
//	dependency jars + compiled classes
//	         ↓
//	    [artifact] (classify jars by file name prefix)
//	         ↓
//	    [proguard] (directive list, liberate.pro, run ProGuard)
//	         ↓
//	    staging jar
//	         ↓
//	    [jar] (extract into the destination directory)
//
// [liberate] orchestrates the steps; [config] and [maven] turn a project
// directory into a request.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/liberate/pkg/artifact"
//	    "github.com/matzehuels/liberate/pkg/liberate"
//	)
//
//	l := liberate.NewLiberator(nil, nil, logger)
//	res, err := l.Execute(context.Background(), liberate.Request{
//	    Packaging:    "liberated-jar",
//	    Enabled:      true,
//	    BuildDir:     "target",
//	    OutputDir:    "target/classes",
//	    Dependencies: artifact.FromPaths(jars),
//	    Parameters: liberate.Parameters{
//	        EntryPoints: []string{"com.example.Main"},
//	    },
//	})
//
// # Main Packages
//
// [artifact] - Dependency jars and their classification into liberate,
// support and ignored buckets. Also reads jars from directories and class
// path files.
//
// [proguard] - Builds the ProGuard directive list, parses it into a
// configuration model, writes .pro files and runs ProGuard as a subprocess.
//
// [jar] - Extracts a jar into a directory, entry by entry, creating each
// missing directory one level at a time.
//
// [liberate] - The goal itself: skip checks, the pipeline, output layouts
// and the staging jar cache.
//
// ## Project Inputs
//
// [config] - liberate.toml and precedence layering (defaults, pom.xml,
// file, flags).
//
// [maven] - pom.xml reader for packaging, build directories and the plugin
// configuration.
//
// ## Infrastructure
//
// [cache] - File-based staging jar cache keyed by a hash of the directives
// and input file stamps.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Optional hooks for step timings and cache activity.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/proguard/...           # Specific package
//
// [artifact]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/artifact
// [proguard]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/proguard
// [jar]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/jar
// [liberate]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/liberate
// [config]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/config
// [maven]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/maven
// [cache]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/liberate/pkg/buildinfo
package pkg
