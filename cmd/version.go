// File: cmd/version.go
package cmd

// Version is the application version.
// Intended to be set at build time via ldflags:
// go build -ldflags "-X github.com/xkilldash9x/cdpdriver/cmd.Version=1.0.0"
var Version = "0.1"
