package main

import "github.com/acousticlab/wavespec/cmd"

func main() {
	cmd.Execute()
}
