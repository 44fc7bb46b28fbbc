//go:build headless

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "lfoplay: built with the headless tag, no audio output available")
	os.Exit(1)
}
