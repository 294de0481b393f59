// SPDX-License-Identifier: MIT

// Command dypro runs dynamic programming scenarios from YAML files.
//
//	dypro run -f scenario.yaml --workers 4
//	dypro sweep -f hydro.yaml --samplings 400,200,100 --parallel 3
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "dypro:", err)
		os.Exit(1)
	}
}
