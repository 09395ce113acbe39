package main

import "github.com/mcoot/fantasy-keepers/internal/cli"

func main() {
	cli.Execute()
}
