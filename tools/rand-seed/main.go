package main

import (
	"fmt"
	"os"

	"github.com/iotaledger/addrinfo/packages/address"
)

func main() {
	seed, err := address.RandomSeed()
	if err != nil {
		fmt.Println(err)
		return
	}
	trytes, err := seed.Trytes()
	if err != nil {
		fmt.Println(err)
		return
	}
	addr, err := address.Derive(seed, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	addrWithChecksum, err := addr.WithChecksum()
	if err != nil {
		fmt.Println(err)
		return
	}

	// If the file doesn't exist, create it, or truncate the file
	f, err := os.OpenFile("random-seed.txt", os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "seed:%s\n", trytes)
	fmt.Fprintf(f, "fingerprint:%s\n", seed.Fingerprint())
	fmt.Fprintf(f, "address0:%s\n", addrWithChecksum)

	fmt.Printf("New random seed %s generated and written in random-seed.txt\n", seed.Fingerprint())
}
