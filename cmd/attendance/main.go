package main

import "github.com/atempo/attendance-tracker/internal/cli"

func main() {
	cli.Execute()
}
