// Package plugins discovers and runs external plugin executables. A plugin
// is a folder below the plugins directory holding a plugin.yaml manifest;
// each discovered plugin becomes a subcommand of the CLI.
package plugins
