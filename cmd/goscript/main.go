package main

import (
	"log"
	"os"

	"github.com/justanotheranonymoususer/goscript/cli"
)

func main() {
	ctl := cli.New()
	if err := ctl.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
