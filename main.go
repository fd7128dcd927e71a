package main

import "github.com/emrgen/manuscript/cmd"

func main() {
	cmd.Execute()
}
