package main

import "github.com/mouse-blink/treesel/cmd"

func main() {
	cmd.Execute()
}
