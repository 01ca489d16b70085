package main

import "salesdash/cmd/salesdash/commands"

func main() {
	commands.Execute()
}
