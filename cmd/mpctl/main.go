package main

import "github.com/adrianmross/mpctl/internal/cmd"

func main() {
	cmd.Execute()
}
