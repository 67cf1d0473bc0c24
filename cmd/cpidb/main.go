// Package main provides the cpidb CLI application.
// cpidb manages the lifecycle of a CPI-U database built from the
// flat files published by the U.S. Bureau of Labor Statistics.
package main

import "github.com/econdata/cpidb/cmd"

func main() {
	cmd.Execute()
}
