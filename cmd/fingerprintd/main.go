package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"chess-zobrist/server"
	"chess-zobrist/zobrist"
)

const DefaultPort = 8080

func main() {
	var port uint
	flag.UintVar(&port, "port", DefaultPort, "Port to listen on")
	keySeed := flag.Int64("keyseed", zobrist.DefaultSeed, "Key table seed")
	flag.Parse()
	if port == 0 || port > 65535 {
		fmt.Println("Invalid port number")
		os.Exit(1)
	}

	keys := zobrist.DefaultKeys()
	if *keySeed != zobrist.DefaultSeed {
		keys = zobrist.NewKeys(*keySeed)
	}
	fmt.Printf("Starting server on :%d\n", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), server.NewApplication(keys, os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
