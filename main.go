package main

import "github.com/karaage0703/pm-bot/cmd"

func main() {
	cmd.Execute()
}
