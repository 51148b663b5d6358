/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import "github.com/opskit/opsync/pkg/cli"

func main() {
	cli.Execute()
}
