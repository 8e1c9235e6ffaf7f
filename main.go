// Package main serves as the entry point for the splitfile application.
// It provides a command-line tool for splitting a single text file into
// sequentially-numbered chunk files, either by a fixed number of lines
// per file or by a fixed number of output files.
package main

import "splitfile/cmd"

func main() {
	cmd.Execute()
}
