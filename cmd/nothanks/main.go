package main

import (
	"github.com/cardtable/nothanks/internal/cli"
)

func main() {
	cli.Execute()
}
