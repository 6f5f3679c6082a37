package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mitranim/sqlcond"
)

/*
Query file. Conditions are compiled and appended to the head after "WHERE";
when none of them emit anything, the head is used as-is.

	head: SELECT * FROM users
	conditions:
	  - {kind: like, field: name, value: name, mode: starts}
	  - {kind: in, field: id, value: ids}
*/
type Query struct {
	Head       string          `json:"head"       yaml:"head"`
	Conditions sqlcond.Sources `json:"conditions" yaml:"conditions"`
}

// Compiled statement as printed to stdout.
type Output struct {
	Text string `json:"text"`
	Args []any  `json:"args"`
}

// Decodes JSON for ".json" files and YAML for everything else.
func readQuery(path string) (out Query, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return out, errors.Wrap(err, "failed to read query file")
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(src, &out)
	} else {
		err = yaml.Unmarshal(src, &out)
	}
	if err != nil {
		return out, errors.Wrapf(err, "failed to decode query file %s", path)
	}
	return out, nil
}

// Decodes a JSON object of parameters. An empty path means no parameters.
func readParams(path string) (sqlcond.Dict, error) {
	if path == "" {
		return nil, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read params file")
	}

	var out sqlcond.Dict
	err = json.Unmarshal(src, &out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode params file %s", path)
	}
	return out, nil
}

func compile(bui *sqlcond.Builder, query Query, params sqlcond.Dict) (Output, error) {
	decls, err := query.Conditions.Decls()
	if err != nil {
		return Output{}, err
	}

	res, err := bui.Build(params, decls...)
	if err != nil {
		return Output{}, err
	}

	out := Output{Text: strings.TrimSpace(query.Head), Args: res.Args}
	if !res.IsEmpty() {
		if out.Text != "" {
			out.Text += " WHERE "
		}
		out.Text += res.Text
	}
	if out.Args == nil {
		out.Args = []any{}
	}
	return out, nil
}
