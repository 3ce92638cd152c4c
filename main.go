package main

import "github.com/hoppxi/lc/internal/cmd"

func main() {
	cmd.Execute()
}
