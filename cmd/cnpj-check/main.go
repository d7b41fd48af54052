// Command cnpj-check validates CNPJ numbers offline.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/consulta-cnpj/consulta-cnpj/cmd/cnpj-check/cli"
)

func main() {
	fs := flag.NewFlagSet("cnpj-check", flag.ExitOnError)
	complete := fs.Bool("complete", false, "treat inputs as 12-digit bases and print the full number")
	jsonOutput := fs.Bool("json", false, "print one JSON object per input")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(fs.Output(), "usage: cnpj-check [-complete] [-json] [cnpj ...]")
		_, _ = fmt.Fprintln(fs.Output(), "reads one number per line from stdin when no arguments are given")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	os.Exit(cli.Check(cli.CheckOptions{
		Complete:   *complete,
		JSONOutput: *jsonOutput,
		Args:       fs.Args(),
		Stdin:      os.Stdin,
	}))
}
