package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(nil).root().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
