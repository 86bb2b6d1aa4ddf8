// Package artifact models resolved dependency jars and sorts them into the
// buckets a liberate run works with.
//
// # Classification
//
// Every [Artifact] lands in exactly one bucket of a [Classification]:
//
//   - Liberate: jars whose file name starts with a liberate-from prefix.
//     Only the classes reachable from the entry points are extracted.
//   - Support: jars matching an also-support prefix. Their own classes are
//     not kept, but whatever they need from the liberated jars is.
//   - Ignored: everything else.
//
// Liberate-from prefixes are tried first and the first match wins:
//
//	deps := []artifact.Artifact{
//	    artifact.New("/repo/scala-library-2.8.0.jar"),
//	    artifact.New("/repo/commons-io-1.4.jar"),
//	}
//	c := artifact.Classify(deps, nil, nil)
//	// c.Liberate: scala-library-2.8.0.jar (default prefixes)
//	// c.Ignored:  commons-io-1.4.jar
//
// # Sources
//
// The Maven host used to inject resolved artifacts. Standalone, they come
// from explicit paths ([FromPaths]), a directory of jars ([ScanDir]), or a
// class path file written by "mvn dependency:build-classpath" ([ReadClasspath]).
package artifact
