package main

import (
	"yhmonitor/internal/cli"
)

func main() {
	cli.Execute()
}
