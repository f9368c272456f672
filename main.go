package main

import (
	"os"

	"github.com/NoamFav/bitvoyager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
