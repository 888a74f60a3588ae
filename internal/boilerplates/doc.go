// Package boilerplates reads, validates and locates boilerplates.
//
// A boilerplate is a folder holding a boilerplate.json descriptor and a
// Content folder with the files that get rendered into a destination.
// Descriptors may carry comments and trailing commas; they are checked
// against an embedded JSON schema before their dependencies are parsed and
// validated. Artifacts boilerplates additionally hold one template.json per
// artifact template below Content.
//
// Boilerplates are usually synced from git sources listed in
// boilerplate-sources.yaml under the user's home directory.
package boilerplates
