// Command epwinspect decodes EPW weather files and prints their header,
// field statistics, column manifest and integrity checks.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
