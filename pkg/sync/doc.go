// Package sync implements the vault-to-cluster synchronization workflow:
// candidate selection, staleness decision, and secret materialization.
//
// A run is strictly sequential and single-threaded. Each item is independent;
// one item's failure (fetch error, empty field set, apply error) is logged
// and counted, never aborts the run, and there is nothing to roll back.
// Concurrent runs targeting overlapping namespaces are not mutually excluded
// and can race on the same destination secret name.
//
// Every ambiguous staleness condition (missing destination, unretrievable
// creation time, unparsable timestamps) resolves toward recreation.
// Recreation is always a full declarative re-apply, never a patch.
package sync
