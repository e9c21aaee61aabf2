// Package dbmapper provides the command-line interface for the dbmapper
// tool. It configures subcommands (scan, detectors, update, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/dbmapper/dbmapper/cmd/dbmapper"
//	func main() { dbmapper.Execute() }
package dbmapper
