package main

import "track-matcher/cmd"

func main() {
	cmd.Execute()
}
