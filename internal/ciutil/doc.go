// Package ciutil centralizes environment detection and the environment
// variables shared by tests, the migration runner, and CI jobs.
//
// It answers three questions the rest of the codebase keeps asking:
// whether the process is running under a CI provider, where the project
// root (and with it the migrations directory) lives, and which database
// URL test infrastructure should connect to. Keeping the answers here
// stops each caller from growing its own slightly different env parsing.
package ciutil
