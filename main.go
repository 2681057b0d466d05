package main

import (
	"log"

	"github.com/djdiegocosta/ticketbuy/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
