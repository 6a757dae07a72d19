package main

import "github.com/xvierd/pomodial/cmd"

func main() {
	cmd.Execute()
}
