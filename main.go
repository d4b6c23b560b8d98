package main

import "github.com/MyCarrier-DevOps/go-fontswap/cmd"

func main() {
	cmd.Execute()
}
