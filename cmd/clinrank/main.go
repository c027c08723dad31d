// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/lcgenomics/clinrank/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
