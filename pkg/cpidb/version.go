package cpidb

// Version and Build are set at compile time via ldflags.
var (
	Version = "v0.1.0"
	Build   = "n/a"
)
