package main

import (
	"github.com/pingcap/tidb/pkg/parser"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
	"github.com/pkg/errors"
)

// Parses the statement with the MySQL grammar. "?" markers are accepted.
func check(sql string) error {
	p := parser.New()
	_, err := p.ParseOneStmt(sql, "", "")
	if err != nil {
		return errors.Wrap(err, "statement failed syntax check")
	}
	return nil
}
