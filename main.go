package main

import "github.com/FabricioUDB/control-gastos/cmd"

func main() {
	cmd.Execute()
}
