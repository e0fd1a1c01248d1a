package main

import (
	"fmt"
	"runtime"
)

// Build-time variables injected via linker flags (ldflags).
//
// Development builds keep these defaults. Release builds set them with:
//
//	go build -ldflags "-X main.Version=$(git describe --tags) ..." -o numinfer
var (
	Version   = "dev"     // git tag (e.g., "v0.3.0")
	Commit    = "unknown" // git commit hash
	BuildDate = "unknown" // build timestamp
)

// printVersion prints version information to stdout.
func printVersion() {
	fmt.Printf("%s %s (%s/%s)\n", appName, Version, runtime.GOOS, runtime.GOARCH)
	if Commit != "unknown" {
		fmt.Printf("  commit: %s\n", Commit)
	}
	if BuildDate != "unknown" {
		fmt.Printf("  built:  %s\n", BuildDate)
	}
}
