package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// printUsage prints the usage message.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: qextract [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extract exam questions from scraped HTML into normalized JSON,")
	fmt.Fprintln(w, "with math notation rewritten as LaTeX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file to read (\"-\" = stdin, optional if config has input.path)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  qextract exam.html -o questions.json")
	fmt.Fprintln(w, "  curl -s https://example.com/exam | qextract - -o questions.json")
	fmt.Fprintln(w, "  qextract exam.html --upload --spreadsheet <id> --credentials creds.json")
}
