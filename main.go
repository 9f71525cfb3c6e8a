package main

import "github.com/paddocklabs/chainderby/cmd"

func main() {
	cmd.Execute()
}
