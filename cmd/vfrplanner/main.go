package main

import "github.com/andrescamacho/vfrplanner-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
