/*
File    : remespath/file/file.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package file implements JSON document ingest for the RemesPath CLI:
// reading a document from disk and running a one-shot query against it.
package file

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/remespath/json"
	"github.com/akashmaji946/remespath/parser"
)

// ReadDocument reads and parses a JSON file into a queryable value.
func ReadDocument(path string) (json.JNode, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file '%s': %v", path, err)
	}
	doc, err := json.ParseJSON(string(content))
	if err != nil {
		return nil, fmt.Errorf("could not parse '%s': %v", path, err)
	}
	return doc, nil
}

// RunQuery loads a JSON document, runs one query against it, and writes
// the result as compact JSON to the writer.
func RunQuery(query string, path string, writer io.Writer) error {
	doc, err := ReadDocument(path)
	if err != nil {
		return err
	}
	result, err := parser.Search(query, doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(writer, result.ToString())
	return nil
}
