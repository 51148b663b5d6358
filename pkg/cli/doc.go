// Package cli implements the command-line interface for the opsync tool.
//
// # Commands
//
// sync - Synchronize vault items into namespace secrets:
//
//	opsync sync --vault prod --namespace team-a [--strategy namespace-list|tag-fanout]
//
// Lists items from the named vault, compares each item's last-update time
// against the creation time of the matching secret in the target namespace,
// and recreates stale or missing secrets. Output defaults to stdout in YAML
// format.
//
// backup - Capture a digest inventory of managed secrets:
//
//	opsync backup --namespace team-a [--output DIR|oci://registry/repo:tag]
//
// Records names, creation timestamps, data keys, and SHA-256 value digests
// of every opsync-managed secret. Values are never written out.
//
// serve - Run the synchronization daemon:
//
//	opsyncd is the packaged form; `opsync serve` runs the same loop in the
//	foreground with the HTTP API on the configured port.
//
// # Global Flags
//
//	--log-level    Logging verbosity (debug, info, warn, error)
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Exit Codes
//
//	0  Success
//	1  General error, or one or more items failed to sync
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/opskit/opsync/pkg/cli.version=1.0.0'"
package cli
