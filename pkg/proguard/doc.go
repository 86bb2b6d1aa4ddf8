// Package proguard builds, checks and executes the ProGuard configuration
// used to liberate classes from library jars.
//
// # Directive List
//
// [BuildConfiguration] turns [Params] into the ordered list of ProGuard
// options that is the contract with the tool. Order matters: ProGuard writes
// every input jar listed before an -outjar into that output, so the
// also-support jars go first and are sent to a discard jar, while the
// project output and the liberate-from jars end up in the staging jar.
//
//	-basedirectory /project/target
//	-injar /m2/commons-io-1.4.jar
//	-outjar liberated-discarded
//	-injar /project/target/classes
//	-injar /m2/scala-library-2.8.0.jar(!scala/swing/test/**, scala/**)
//	-outjar liberated-staging.jar
//	-libraryjars <java.home>/lib/rt.jar
//	-keep public class com.example.Main {*;}
//	-ignorewarnings
//	-dontoptimize
//	-dontobfuscate
//	-dontpreverify
//
// # Parsing
//
// [Parse] reads a directive list into a [Configuration], rejecting anything
// ProGuard's own parser would reject for the options used here.
//
// # Execution
//
// A [Shrinker] runs the configuration. [ExecShrinker] writes a .pro file and
// launches ProGuard as a Java subprocess.
package proguard
