package main

import (
	"log"

	"github.com/samuelfneumann/gemgrid/cmd"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gemgrid: ")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
