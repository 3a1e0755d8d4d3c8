package main

import (
	"github.com/Toalaah/esbuild-plugin-strip/pkg/cli"
)

var Version = "dev"

func main() {
	sm := cli.StripMain{
		Version: Version,
	}
	sm.Main()
}
