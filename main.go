package main

import (
	"github.com/joho/godotenv"

	"github.com/Andrew77447/newsapp/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	godotenv.Load()
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
