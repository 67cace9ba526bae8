package main

import "github.com/sonica-audio/engine/cmd/sonicactl/cmd"

func main() {
	cmd.Execute()
}
