/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/

// Package backup builds inventories of managed secrets and packages them
// as backup bundles for local directories or OCI registries.
//
// An inventory records metadata only: secret names, creation timestamps,
// data keys, and a SHA-256 digest per value. Secret values never leave the
// cluster.
package backup
