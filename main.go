package main

import "github.com/rega-cev/virulign/cmd"

func main() {
	cmd.Execute()
}
