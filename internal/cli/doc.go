// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and the optional TOML file into the application's
// configuration and dispatches to the App operations.
package cli
