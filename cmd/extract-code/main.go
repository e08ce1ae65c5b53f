package main

import "github.com/gkunal8019/extract-code/internal/cli"

func main() {
	cli.Execute()
}
