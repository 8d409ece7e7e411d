package main

import "github.com/pixelbot/pixelbot/cmd"

func main() {
	cmd.Execute()
}
