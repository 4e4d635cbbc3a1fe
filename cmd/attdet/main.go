// Package main is the attdet command.
package main

import (
	"log"
	"os"

	"go.viam.com/attdet/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
