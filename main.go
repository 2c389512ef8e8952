// Package main is the entry point for the mmfeatures CLI tool, which turns
// per-season college basketball summaries into model-ready feature and
// tournament matchup tables.
package main

import "github.com/pable/go-mm-features/cmd"

func main() {
	cmd.Execute()
}
