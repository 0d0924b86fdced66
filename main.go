package main

import "github.com/the5hc/fitscore/cmd"

func main() {
	cmd.Execute()
}
