// Package liberate runs the liberate goal: it extracts the classes a
// project actually needs from large library jars and merges them into the
// build output.
//
// # Pipeline
//
// [Liberator.Execute] performs, in order:
//
//  1. Skip checks: packaging must be "liberated-jar" and the goal enabled
//  2. Classification of dependency jars by file name prefix
//  3. The ProGuard directive list ([proguard.BuildConfiguration])
//  4. Writing liberate.pro and parsing the directives
//  5. Shrinking, or restoring the staging jar from the cache
//  6. Extracting the staging jar into the destination directory
//
// Every step is fatal on failure; nothing is retried or rolled back.
// Re-running after a failure overwrites whatever a partial run left.
//
// # Layouts
//
// [LayoutSeparate] (the default) writes liberated-staging.jar and extracts
// it into <build>/liberated-classes. [LayoutInPlace] writes
// onlyThoseRequired.jar and extracts it over the project's own output
// directory.
package liberate
