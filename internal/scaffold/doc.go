// Package scaffold renders boilerplate content into a destination folder.
// Paths and file contents are Go templates evaluated over the resolved
// dependency context. It also works out where a new artifact belongs inside
// a bounded context.
package scaffold
