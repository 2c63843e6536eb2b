package main

import "demodoc/cmd"

func main() {
	cmd.Execute()
}
