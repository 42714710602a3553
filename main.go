package main

import "github.com/taskbench/taskbench/cmd"

func main() {
	cmd.Execute()
}
