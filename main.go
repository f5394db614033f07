package main

import "pacewatch/cmd"

func main() {
	cmd.Execute()
}
