package maven

import (
	"strconv"
	"strings"

	"github.com/matzehuels/liberate/pkg/errors"
)

// PluginConfig holds the liberate goal parameters declared in a pom.xml.
// Pointer and nil-slice fields distinguish "not configured" from an
// explicit value, so callers can layer them over their own defaults.
type PluginConfig struct {
	LibraryJars               []string
	LiberateFrom              []string
	AlsoSupport               []string
	EntryPoints               []string
	Filter                    *string
	LiberatedClassesDirectory string
	SuppressNotes             *bool
	SuppressWarnings          *bool
	Verbose                   *bool
	Enabled                   *bool
}

// pluginConfig mirrors the <configuration> element. List parameters hold
// one <param> per value.
type pluginConfig struct {
	LibraryJars               *paramList `xml:"libraryJars"`
	LiberateFrom              *paramList `xml:"liberateFromDepsWhoseArtsStartWith"`
	AlsoSupport               *paramList `xml:"alsoSupportDepsWhoseArtsStartWith"`
	EntryPoints               *paramList `xml:"entryPoints"`
	Filter                    *string    `xml:"filter"`
	LiberatedClassesDirectory string     `xml:"liberatedClassesDirectory"`
	SuppressNotes             string     `xml:"suppressNotes"`
	SuppressWarnings          string     `xml:"suppressWarnings"`
	Verbose                   string     `xml:"verbose"`
	Enabled                   string     `xml:"enabled"`
}

type paramList struct {
	Params []string `xml:"param"`
}

// LiberateConfig returns the configuration of the liberate plugin, merging
// the plugin-level <configuration> with that of any execution binding the
// "liberate" goal (execution values win). It returns nil when the plugin is
// not declared.
func (p *POM) LiberateConfig() *PluginConfig {
	for _, pl := range p.raw.Build.Plugins {
		if strings.TrimSpace(pl.GroupID) != PluginGroupID {
			continue
		}
		out := &PluginConfig{}
		p.apply(out, pl.Configuration)
		for _, ex := range pl.Executions {
			for _, g := range ex.Goals {
				if strings.TrimSpace(g) == "liberate" {
					p.apply(out, ex.Configuration)
				}
			}
		}
		return out
	}
	return nil
}

func (p *POM) apply(out *PluginConfig, c *pluginConfig) {
	if c == nil {
		return
	}
	if c.LibraryJars != nil {
		out.LibraryJars = params(c.LibraryJars)
	}
	if c.LiberateFrom != nil {
		out.LiberateFrom = params(c.LiberateFrom)
	}
	if c.AlsoSupport != nil {
		out.AlsoSupport = params(c.AlsoSupport)
	}
	if c.EntryPoints != nil {
		out.EntryPoints = params(c.EntryPoints)
	}
	if c.Filter != nil {
		f := strings.TrimSpace(*c.Filter)
		out.Filter = &f
	}
	if d := strings.TrimSpace(c.LiberatedClassesDirectory); d != "" {
		out.LiberatedClassesDirectory = p.abs(p.interpolate(d, propsOutput))
	}
	setBool(&out.SuppressNotes, c.SuppressNotes)
	setBool(&out.SuppressWarnings, c.SuppressWarnings)
	setBool(&out.Verbose, c.Verbose)
	setBool(&out.Enabled, c.Enabled)
}

func params(l *paramList) []string {
	out := make([]string, 0, len(l.Params))
	for _, v := range l.Params {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// validatePlugin rejects boolean parameters of the liberate plugin that do
// not parse, so a typo cannot silently fall back to the default.
func (r *pomProject) validatePlugin() error {
	for _, pl := range r.Build.Plugins {
		if strings.TrimSpace(pl.GroupID) != PluginGroupID {
			continue
		}
		configs := []*pluginConfig{pl.Configuration}
		for _, ex := range pl.Executions {
			configs = append(configs, ex.Configuration)
		}
		for _, c := range configs {
			if c == nil {
				continue
			}
			for _, b := range []struct{ name, value string }{
				{"suppressNotes", c.SuppressNotes},
				{"suppressWarnings", c.SuppressWarnings},
				{"verbose", c.Verbose},
				{"enabled", c.Enabled},
			} {
				v := strings.TrimSpace(b.value)
				if v == "" {
					continue
				}
				if _, err := strconv.ParseBool(v); err != nil {
					return errors.New(errors.ErrCodeInvalidManifest, "pom.xml: <%s> must be true or false, got %q", b.name, v)
				}
			}
		}
	}
	return nil
}

// setBool expects values already checked by validatePlugin.
func setBool(dst **bool, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if b, err := strconv.ParseBool(s); err == nil {
		*dst = &b
	}
}
