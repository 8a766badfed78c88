package app

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"das_notify/internal/domain"
)

// Only Clients[0] is constrained; later clients are never read.
//
//go:embed schema/input.schema.json
var inputSchemaJSON string

var (
	inputSchemaOnce sync.Once
	inputSchema     *gojsonschema.Schema
	inputSchemaErr  error
)

func loadInputSchema() (*gojsonschema.Schema, error) {
	inputSchemaOnce.Do(func() {
		inputSchema, inputSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(inputSchemaJSON))
	})
	return inputSchema, inputSchemaErr
}

// ParseInput turns raw file content into an InputPayload holding only the
// decoded first client.
// Syntax errors, shape mismatches and an empty client list are all *domain.ParseError.
func ParseInput(path string, data []byte) (domain.InputPayload, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.InputPayload{}, &domain.ParseError{Path: path, Err: err}
	}

	schema, err := loadInputSchema()
	if err != nil {
		return domain.InputPayload{}, fmt.Errorf("load input schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return domain.InputPayload{}, &domain.ParseError{Path: path, Err: err}
	}
	if !res.Valid() {
		errs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			errs = append(errs, e.String())
		}
		return domain.InputPayload{}, &domain.ParseError{
			Path: path,
			Err:  fmt.Errorf("%w: %s", domain.ErrInvalidShape, strings.Join(errs, "; ")),
		}
	}

	// later clients stay raw: they are never read, so they are never rejected
	var raw struct {
		Clients []json.RawMessage `json:"Clients"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.InputPayload{}, &domain.ParseError{
			Path: path,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidShape, err),
		}
	}
	if len(raw.Clients) == 0 {
		return domain.InputPayload{}, &domain.ParseError{Path: path, Err: domain.ErrEmptyInput}
	}
	var first domain.Client
	if err := json.Unmarshal(raw.Clients[0], &first); err != nil {
		return domain.InputPayload{}, &domain.ParseError{
			Path: path,
			Err:  fmt.Errorf("%w: Clients[0]: %v", domain.ErrInvalidShape, err),
		}
	}
	return domain.InputPayload{Clients: []domain.Client{first}}, nil
}
