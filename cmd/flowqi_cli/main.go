package main

import (
	"os"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
