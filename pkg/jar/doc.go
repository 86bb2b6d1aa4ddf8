// Package jar reads and writes the staging archive produced by the shrinker.
//
// [Extract] copies every entry of a jar into a directory tree, creating
// intermediate directories one level at a time. It performs no rollback: a
// failure part way leaves whatever was already written in place, and
// running it again overwrites every file.
//
// Archives are handled with github.com/klauspost/compress/zip, a drop-in
// replacement for archive/zip with faster inflation.
package jar
