package main

import (
	"github.com/Pradeep-10x/synapse-cli/internal/cmd"
)

func main() {
	cmd.Execute()
}
