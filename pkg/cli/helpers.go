/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/opskit/opsync/pkg/serializer"
)

// writeOut serializes v to the given destination (file, stdout, or
// cm://namespace/name) and closes the writer when it holds resources.
func writeOut(ctx context.Context, format serializer.Format, output string, v any) error {
	out := serializer.NewFileWriterOrStdout(format, output)
	if err := out.Serialize(ctx, v); err != nil {
		return err
	}
	if c, ok := out.(serializer.Closer); ok {
		return c.Close()
	}
	return nil
}
