package main

import "github.com/arcadehub/arcade/internal/cli"

func main() {
	cli.Execute()
}
