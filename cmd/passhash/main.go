// passhash prints the hash of an admin password, to be provisioned through
// SEMEAR_ADMIN_PASSWORD_HASH or inserted into admin_users directly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/pkg"
)

func main() {
	password := flag.String("password", "", "password to hash (read from STDIN when empty)")
	cost := flag.Int("cost", pkg.DefaultHashCost, "bcrypt cost")
	flag.Parse()

	pass := *password
	if pass == "" {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read password: %s", err)
		}
		pass = strings.TrimRight(line, "\r\n")
	}
	if pass == "" {
		log.Fatalln("empty password")
	}

	hash, err := pkg.HashPassword(pass, *cost)
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}

	fmt.Println(hash)
}
