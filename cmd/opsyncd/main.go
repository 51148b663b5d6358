/*
Copyright © 2025 the opsync authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"log"

	"github.com/opskit/opsync/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
