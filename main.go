// Package main is the entry point for the crateup CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The crateup tool finds outdated direct
// dependencies of a Cargo project and upgrades the ones you pick.
package main

import "github.com/crateup/crateup/cmd"

// main initializes and runs the crateup CLI application.
//
// It delegates all flag parsing and execution to the cmd package, which
// drives the manifest, registry, selection, and upgrade phases.
func main() {
	cmd.Execute()
}
