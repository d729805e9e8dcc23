package main

import "github.com/leesanghooooon/moneymate-sub001/internal/cli"

func main() {
	cli.Execute()
}
