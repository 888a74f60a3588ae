// Package parsing turns the raw dependency descriptors of a boilerplate into
// typed dependencies. Each parser claims descriptors by the discriminating
// fields they carry; exactly one registered parser must claim a descriptor.
// Parsers only check structure. Field-level correctness is left to the
// validation package.
package parsing
