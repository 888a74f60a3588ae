// Package userdata manages the ~/.dolittle/ directory structure: where synced
// boilerplates, installed plugins and the boilerplate sources file live. Every
// location can be overridden through a DOLITTLE_* environment variable.
package userdata
