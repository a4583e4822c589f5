// Package bank loads the static multiple-choice question bank.
package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Choices are the answer tokens rendered for every question.
var Choices = []string{"A", "B", "C", "D"}

// IsChoice reports whether token is one of the rendered choices.
func IsChoice(token string) bool {
	for _, c := range Choices {
		if c == token {
			return true
		}
	}
	return false
}

// ID is a question identifier. The bank may carry it as a JSON number or
// string; it is always handled in string form.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("num must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		*id = ID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier.
func (id ID) String() string {
	return string(id)
}

// Question is a single multiple-choice item. Immutable once loaded.
type Question struct {
	Num    ID     `json:"num"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

// ID returns the question's identifier as a string.
func (q Question) ID() string {
	return string(q.Num)
}
