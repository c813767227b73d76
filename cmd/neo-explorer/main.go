package main

import "github.com/signalsfoundry/neo-explorer/cmd/neo-explorer/commands"

func main() {
	commands.Execute()
}
