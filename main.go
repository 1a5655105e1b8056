package main

import "github.com/jsphweid/lyricmidi/cmd"

func main() {
	cmd.Execute()
}
