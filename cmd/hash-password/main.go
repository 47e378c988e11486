// Comando hash-password genera el hash bcrypt para la columna usuarios.password.
// El login rechaza contraseñas guardadas en texto plano.
//
//	go run ./cmd/hash-password 'mi-clave'
//	echo 'mi-clave' | go run ./cmd/hash-password
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "costo bcrypt")
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "uso: hash-password <password>")
			os.Exit(2)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
