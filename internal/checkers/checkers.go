// Package checkers provides quicktest checkers shared by the test suites.
package checkers

import (
	"encoding/json"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker that decodes the JSON document in got
// (a string or []byte), selects the value at the given JSONPath and compares
// it to the wanted value with qt.DeepEquals. JSON numbers decode as float64.
//
//	c.Assert(text, checkers.JSONPathEquals("$.total"), float64(1))
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

type jsonPathChecker struct {
	path string
}

func (*jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

func (j *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var data []byte
	switch v := got.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return qt.BadCheckf("got value must be a JSON string or []byte, got %T", got)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("cannot decode JSON: %w", err)
	}
	value, err := jsonpath.Read(doc, j.path)
	if err != nil {
		return fmt.Errorf("cannot read JSONPath %s: %w", j.path, err)
	}
	note("path", j.path)
	return qt.DeepEquals.Check(value, args, note)
}
