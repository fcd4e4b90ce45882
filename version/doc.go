// Package version reports build information for the seqshare binary.
//
// Version, GitCommit and BuildTime are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/seqshare/version.Version=1.0.0"
//
// Anything left unset falls back to the VCS stamp the Go toolchain embeds.
package version
