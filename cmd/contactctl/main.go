// Package main is the operator CLI: run the contact workflow once, or
// inspect the prompt and rendered emails without sending anything.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
