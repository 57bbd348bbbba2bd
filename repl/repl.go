/*
File    : remespath/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the interactive query shell for RemesPath.
The shell holds one JSON document and runs each input line as a query
against it:
- Enter a query and see its result immediately
- Load a document from disk with '.load <path>'
- Inspect the current document with '.doc'
- Navigate query history using arrow keys
- Receive colored feedback for results and errors

The shell uses the readline library for line editing and history, and
the parser's caching engine so repeated queries skip recompilation.
*/
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/remespath/file"
	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// Color definitions for shell output:
// - blueColor: decorative lines and separators
// - yellowColor: query results and version info
// - redColor: error messages
// - greenColor: banner
// - cyanColor: informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one interactive shell instance.
type Repl struct {
	Banner  string     // ASCII art banner displayed at startup
	Version string     // Version string
	Author  string     // Author contact information
	Line    string     // Separator line for visual formatting
	License string     // Software license information
	Prompt  string     // Command prompt shown to the user
	Doc     json.JNode // The document queries run against
}

// NewRepl creates a shell with the given presentation strings. The
// document starts as null until one is loaded.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{
		Banner: banner, Version: version, Author: author,
		Line: line, License: license, Prompt: prompt,
		Doc: json.NewNull(),
	}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to RemesPath!")
	cyanColor.Fprintf(writer, "%s\n", "Type a query and press enter to run it against the document")
	cyanColor.Fprintf(writer, "%s\n", "Type '.load <path>' to load a JSON document")
	cyanColor.Fprintf(writer, "%s\n", "Type '.doc' to show the document, '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate query history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the shell main loop, reading queries until '.exit' or
// EOF. The reader argument exists for callers that pipe a session (the
// TCP server); interactive sessions read through readline.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	engine := parser.NewEngine(parser.DefaultCacheCapacity)

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)
		if r.handleCommand(writer, line) {
			continue
		}
		r.executeWithRecovery(writer, line, engine)
	}
}

// handleCommand processes the dot commands; it reports whether the line
// was one.
func (r *Repl) handleCommand(writer io.Writer, line string) bool {
	switch {
	case line == ".doc":
		yellowColor.Fprintf(writer, "%s\n", r.Doc.ToString())
		return true
	case strings.HasPrefix(line, ".load "):
		path := strings.TrimSpace(strings.TrimPrefix(line, ".load "))
		doc, err := file.ReadDocument(path)
		if err != nil {
			redColor.Fprintf(writer, "[LOAD ERROR] %v\n", err)
			return true
		}
		r.Doc = doc
		cyanColor.Fprintf(writer, "Loaded %s\n", path)
		return true
	}
	return false
}

// executeWithRecovery compiles and runs one query with panic recovery,
// so a shell session survives any error and the user can try again.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, engine *parser.Engine) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	result, err := engine.Search(line, r.Doc)
	if err != nil {
		redColor.Fprintf(writer, "[QUERY ERROR] %v\n", err)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.ToString())
}
