/*
Copyright © 2024 Matt Muldowney <matt.muldowney@gmail.com>

*/
package main

import "github.com/mmuldo/seasonmatch/cmd"

func main() {
	cmd.Execute()
}
