// Package validation checks parsed dependencies before they are resolved.
// Each validator owns one rule about one variant and is safe to run in any
// order; a Validators set runs every validator that applies and joins the
// failures.
package validation
