package main

import (
	_ "buildmart.GO/custom"

	"buildmart.GO/cmd"
	"buildmart.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
