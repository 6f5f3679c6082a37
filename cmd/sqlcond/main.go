/*
Command sqlcond compiles a query file with conditional declarations into SQL
text with positional arguments, and prints the result as JSON:

	sqlcond -query query.yaml -params params.json
	{"text":"SELECT * FROM users WHERE name LIKE ?","args":["bob%"]}

With -check, the compiled statement is additionally parsed with the MySQL
grammar.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/mitranim/sqlcond/internal/config"
	"github.com/mitranim/sqlcond/internal/logging"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sqlcond: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("sqlcond", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to config file (YAML)")
	queryPath := flags.String("query", "", "path to query file (YAML or JSON)")
	paramsPath := flags.String("params", "", "path to params file (JSON object)")
	checkSyntax := flags.Bool("check", false, "parse the compiled statement with the MySQL grammar")

	err := flags.Parse(args)
	if err != nil {
		return err
	}
	if *queryPath == "" {
		return errors.New("missing -query")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := logging.New(stderr, logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	bui, err := cfg.Builder(&log)
	if err != nil {
		return err
	}

	query, err := readQuery(*queryPath)
	if err != nil {
		return err
	}

	params, err := readParams(*paramsPath)
	if err != nil {
		return err
	}

	out, err := compile(&bui, query, params)
	if err != nil {
		return err
	}
	log.Debug().Str("text", out.Text).Int("args", len(out.Args)).Msg("compiled")

	if *checkSyntax {
		err = check(out.Text)
		if err != nil {
			return err
		}
		log.Debug().Msg("syntax check passed")
	}

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
