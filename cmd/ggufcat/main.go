package main

import "ggufcat/cmd/ggufcat/cmd"

func main() {
	cmd.Execute()
}
