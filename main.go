package main

import "github.com/Tiliavir/spotsecure/cmd"

func main() {
	cmd.Execute()
}
