// Command dsvtool converts delimiter-separated files and loads bus networks
// from them.
package main

import (
	"os"

	"github.com/shapestone/shape-dsv/cmd/dsvtool/command"
)

func main() {
	if err := command.New().Execute(); err != nil {
		os.Exit(1)
	}
}
