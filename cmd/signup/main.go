package main

import "github.com/mcoot/mergington-activities/internal/cli"

func main() {
	cli.Execute()
}
