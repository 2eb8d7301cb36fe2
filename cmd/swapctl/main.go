package main

import (
	"os"

	"swapman/internal/ctl"
)

func main() {
	os.Exit(ctl.Execute(os.Args[1:]))
}
