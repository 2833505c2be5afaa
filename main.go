package main

import "credit-advisor/cmd"

func main() {
	cmd.Execute()
}
