// Package vault provides a typed client for the external secrets-manager
// CLI. The secrets manager partitions credentials into named vaults holding
// items; each item carries tags naming the cluster namespaces it targets and
// an ordered list of fields.
//
// The CLI is assumed pre-authenticated (session token or service account in
// the environment); this package never handles vault credentials itself.
// Command output is decoded as JSON into the Item model rather than parsed
// as text, so callers never see the CLI's wire format.
package vault
