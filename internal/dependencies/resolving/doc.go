// Package resolving turns parsed dependencies into values.
//
// Resolvers claims every dependency with exactly one registered Resolver,
// groups the dependencies by owner in first-claimed order and runs the
// groups one after another against a shared dependencies.Context. Each
// resolver writes through a Scope that only accepts the names it claimed.
//
// Discoverer holds the filesystem discovery algorithm shared by the discover
// and discover-and-prompt resolvers: namespace synthesis from the nearest
// milestone file, and file, file content and multi-file searches optionally
// restricted to a configured area and paired with a namespace.
package resolving
