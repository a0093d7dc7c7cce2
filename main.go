package main

import (
	"os"

	"github.com/ocsin1/artian-reroller/commands"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	os.Exit(commands.Execute(Version))
}
