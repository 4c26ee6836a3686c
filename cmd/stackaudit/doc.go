// Package stackaudit provides the command-line interface for the stackaudit
// tool. It configures subcommands (scan, profiles, rules, ci, update), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/stackaudit/stackaudit/cmd/stackaudit"
//	func main() { stackaudit.Execute() }
package stackaudit
