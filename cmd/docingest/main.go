package main

import "docingest/internal/cli"

func main() {
	cli.Execute()
}
