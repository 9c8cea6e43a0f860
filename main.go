package main

import "github.com/josephlewis42/hsh/cmd"

func main() {
	cmd.Execute()
}
