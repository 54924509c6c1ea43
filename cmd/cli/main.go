package main

import "comboshare/cmd/cli/command"

func main() {
	command.Execute()
}
