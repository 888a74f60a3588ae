// Package dependencies holds the model of boilerplate dependencies: the named
// template variables a boilerplate needs resolved before it is rendered.
//
// A Dependency carries an explicit Kind set when it is parsed. Value
// dependencies carry a literal, discover dependencies derive their value from
// the filesystem, prompt dependencies ask the user, and discover-and-prompt
// dependencies discover candidates and let the user pick. Resolution writes
// into a Context, an insertion-ordered map from dependency name to value that
// is handed to the template renderer.
//
// Every failure raised by the engine wraps one of the sentinel errors in this
// package so callers can classify it with errors.Is.
package dependencies
