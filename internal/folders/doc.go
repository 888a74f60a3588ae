// Package folders searches the filesystem on behalf of dependency discovery.
//
// All searches run against an afero.Fs so they can be exercised on an
// in-memory tree. Paths are cleaned and made absolute before matching.
// Regular expressions are matched against the absolute, slash separated path
// of each entry, so "(^|/)Name$" selects by base name. Results are
// returned in lexical order. Folders that do not exist yield no results.
//
// Upward searches walk Ancestors, a bounded iterator that stops at the
// filesystem root or after a configurable number of directories.
package folders
