package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatalf("error executing root command: %s", err)
	}
}
