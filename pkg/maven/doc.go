// Package maven reads the parts of a pom.xml that a liberate run needs in
// place of the Maven host: the packaging type, the build directories, and
// the liberate goal's plugin configuration.
//
//	p, err := maven.ReadPOM("pom.xml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.Packaging)      // "liberated-jar"
//	fmt.Println(p.OutputDir())    // "/project/target/classes"
//	cfg := p.LiberateConfig()     // nil when the plugin is not declared
//
// Only literal values and the ${project.basedir}, ${basedir},
// ${project.build.directory} and ${project.build.outputDirectory}
// properties are interpreted. Parent POMs and profiles are not resolved.
package maven
