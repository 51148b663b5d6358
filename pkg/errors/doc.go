// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeVaultQuery,
//	    "failed to fetch vault item",
//	    cmdErr,
//	    map[string]interface{}{
//	        "vault": vaultName,
//	        "item":  title,
//	    },
//	)
package errors
