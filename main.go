package main

import "github.com/cubepay/cubepay/cmd"

func main() {
	cmd.Execute()
}
