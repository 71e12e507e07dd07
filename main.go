// main package for seedstrip command-line tool
// Package main is the entry point for the Seedstrip CLI.
package main

import "seedstrip.dev/pkg/seedstrip/cmd"

func main() {
	cmd.Execute()
}
