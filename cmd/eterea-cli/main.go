package main

import "eterea/cmd/eterea-cli/cmd"

func main() {
	cmd.Execute()
}
