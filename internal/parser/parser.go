// Package parser recovers report records from free-form model output. It is
// a best-effort extractor: it finds one bracketed region and decodes it, it
// does not repair or re-prompt.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"trendy/internal/core"
)

// RequiredKeys are the keys every array element must carry.
var RequiredKeys = []string{"cafe", "restaurant", "park", "report"}

// reportSchema only checks key presence; values are not type-checked.
const reportSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["cafe", "restaurant", "park", "report"]
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(reportSchema)

// Parser extracts report records using a configurable scan mode.
type Parser struct {
	mode ScanMode
}

// NewParser creates a Parser. An empty mode means ScanFirstClosing.
func NewParser(mode ScanMode) *Parser {
	if mode == "" {
		mode = ScanFirstClosing
	}
	return &Parser{mode: mode}
}

// Mode returns the scan mode in use
func (p *Parser) Mode() ScanMode {
	return p.mode
}

// Parse locates the JSON array in raw and returns its records in order.
// Failures are *ParseError values matching ErrNoJSONFound, ErrMalformedJSON
// or ErrSchemaViolation.
func (p *Parser) Parse(raw string) ([]core.ReportRecord, error) {
	fragment, ok := locate(raw, p.mode)
	if !ok {
		return nil, &ParseError{Kind: ErrNoJSONFound, Raw: raw}
	}

	var doc any
	if err := json.Unmarshal([]byte(fragment), &doc); err != nil {
		return nil, &ParseError{Kind: ErrMalformedJSON, Raw: raw, Fragment: fragment, Err: err}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &ParseError{Kind: ErrSchemaViolation, Raw: raw, Fragment: fragment, Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, &ParseError{
			Kind:     ErrSchemaViolation,
			Raw:      raw,
			Fragment: fragment,
			Err:      errors.New(strings.Join(msgs, "; ")),
		}
	}

	items, _ := doc.([]any)
	records := make([]core.ReportRecord, 0, len(items))
	for _, item := range items {
		obj := item.(map[string]any)
		records = append(records, core.ReportRecord{
			Cafe:       field(obj, "cafe"),
			Restaurant: field(obj, "restaurant"),
			Park:       field(obj, "park"),
			Report:     field(obj, "report"),
		})
	}

	return records, nil
}

// Parse uses the default scan mode.
func Parse(raw string) ([]core.ReportRecord, error) {
	return NewParser(ScanFirstClosing).Parse(raw)
}

func field(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
