package main

import "steamscan/cmd"

func main() {
	cmd.Execute()
}
