package main

import "github.com/seakeeping/gobem/cmd"

func main() {
	cmd.Execute()
}
