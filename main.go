package main

import "github.com/moyu-x/smart-organizer/cmd"

func main() {
	cmd.Execute()
}
