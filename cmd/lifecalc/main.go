package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI(os.Stdin, os.Stdout, os.Stderr)
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		os.Exit(1)
	}
}
