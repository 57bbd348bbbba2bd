/*
File    : remespath/main/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for the RemesPath query tool.
It provides three modes of operation:
1. REPL Mode (default): interactive query shell over a JSON document
2. Run Mode: run one query against a JSON file from the command line
3. Server Mode: serve the query shell over TCP, one session per client
*/
package main

import (
	"net"
	"os"

	"github.com/akashmaji946/remespath/file"
	"github.com/akashmaji946/remespath/repl"
	"github.com/fatih/color"
)

// VERSION represents the current version of the query tool
var VERSION = "v1.0.0"

// AUTHOR contains the contact information of the tool's author
var AUTHOR = "akashmaji(@iisc.ac.in)"

// LICENCE specifies the software license (MIT License)
var LICENCE = "MIT"

// PROMPT is the command prompt displayed in REPL mode
var PROMPT = "RemesPath >>> "

// BANNER is the ASCII art logo displayed when starting the REPL
var BANNER = `
 ██▀███  ▓█████  ███▄ ▄███▓▓█████   ██████  ██▓███   ▄▄▄     ▄▄▄█████▓ ██░ ██
▓██ ▒ ██▒▓█   ▀ ▓██▒▀█▀ ██▒▓█   ▀ ▒██    ▒ ▓██░  ██▒▒████▄   ▓  ██▒ ▓▒▓██░ ██▒
▓██ ░▄█ ▒▒███   ▓██    ▓██░▒███   ░ ▓██▄   ▓██░ ██▓▒▒██  ▀█▄ ▒ ▓██░ ▒░▒██▀▀██░
▒██▀▀█▄  ▒▓█  ▄ ▒██    ▒██ ▒▓█  ▄   ▒   ██▒▒██▄█▓▒ ▒░██▄▄▄▄██░ ▓██▓ ░ ░▓█ ░██
░██▓ ▒██▒░▒████▒▒██▒   ░██▒░▒████▒▒██████▒▒▒██▒ ░  ░ ▓█   ▓██▒ ▒██▒ ░ ░▓█▒░██▓
`

// LINE is a separator line used for visual formatting in the REPL
var LINE = "----------------------------------------------------------------"

// Color definitions for command-line output:
// - redColor: error messages and critical failures
// - yellowColor: usage lines and results
// - cyanColor: informational messages
var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// main determines the operating mode from the command-line arguments:
//
//	remespath                        - Start the interactive shell
//	remespath <file.json>            - Start the shell with a document loaded
//	remespath '<query>' <file.json>  - Run one query and print the result
//	remespath server <port> [file]   - Serve the shell over TCP
//	remespath --help                 - Display help information
//	remespath --version              - Display version information
func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]

		if arg == "--help" || arg == "-h" {
			showHelp()
			os.Exit(0)
		}

		if arg == "--version" || arg == "-v" {
			showVersion()
			os.Exit(0)
		}

		if arg == "server" {
			if len(os.Args) < 3 {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] Missing port for server mode. Usage: remespath server <port> [file.json]\n")
				os.Exit(1)
			}
			port := os.Args[2]
			docPath := ""
			if len(os.Args) > 3 {
				docPath = os.Args[3]
			}
			startServer(port, docPath)
			return
		}

		if len(os.Args) > 2 {
			// Run mode: one query against one document
			query, path := os.Args[1], os.Args[2]
			if err := file.RunQuery(query, path, os.Stdout); err != nil {
				redColor.Fprintf(os.Stderr, "[QUERY ERROR] %v\n", err)
				os.Exit(1)
			}
			return
		}

		// One argument: treat it as a document and open the shell on it
		repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
		doc, err := file.ReadDocument(arg)
		if err != nil {
			redColor.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
			os.Exit(1)
		}
		repler.Doc = doc
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	// REPL mode
	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

// showHelp displays the help information for the query tool.
func showHelp() {
	cyanColor.Println("RemesPath - A Query Language for JSON")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  remespath                         Start the interactive query shell")
	yellowColor.Println("  remespath <file.json>             Start the shell with a document loaded")
	yellowColor.Println("  remespath '<query>' <file.json>   Run one query and print the result")
	yellowColor.Println("  remespath server <port> [file]    Serve the query shell over TCP")
	yellowColor.Println("  remespath --help                  Display this help message")
	yellowColor.Println("  remespath --version               Display version information")
	cyanColor.Println("")
	cyanColor.Println("SHELL COMMANDS:")
	yellowColor.Println("  .load <path>                      Load a JSON document")
	yellowColor.Println("  .doc                              Show the current document")
	yellowColor.Println("  .exit                             Exit the shell")
	cyanColor.Println("")
	cyanColor.Println("EXAMPLES:")
	yellowColor.Println("  remespath                         # Start the shell")
	yellowColor.Println("  remespath '@.foo[:2]' data.json")
	yellowColor.Println("  remespath server 8080 data.json   # Serve the shell on port 8080")
}

// showVersion displays the version information for the query tool.
func showVersion() {
	cyanColor.Println("RemesPath - A Query Language for JSON")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// startServer listens on the given port and hands every connection a
// dedicated query shell, optionally preloaded with a document.
func startServer(port string, docPath string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] Failed to start server on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("RemesPath query server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] Failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn, docPath)
	}
}

// handleClient manages a single client connection, using the network
// connection as both the input reader and output writer.
func handleClient(conn net.Conn, docPath string) {
	defer conn.Close()
	cyanColor.Printf("New client connected from %s\n", conn.RemoteAddr())
	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	if docPath != "" {
		if doc, err := file.ReadDocument(docPath); err == nil {
			repler.Doc = doc
		}
	}
	repler.Start(conn, conn)
	cyanColor.Printf("Client disconnected from %s\n", conn.RemoteAddr())
}
