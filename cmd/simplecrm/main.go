// Command simplecrm is a terminal client for a SimpleCRM GraphQL endpoint.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "simplecrm:", err)
		os.Exit(1)
	}
}
