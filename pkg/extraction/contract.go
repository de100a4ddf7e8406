package extraction

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

const contractPath = "/extract_solution"

//go:embed contract.yaml
var defaultContract []byte

// Contract checks request and response bodies against the OpenAPI
// description of the extraction endpoint.
type Contract struct {
	request  *openapi3.Schema
	response *openapi3.Schema
}

// DefaultContract loads the embedded description.
func DefaultContract(ctx context.Context) (*Contract, error) {
	return LoadContract(ctx, defaultContract)
}

// LoadContract parses an OpenAPI 3 document and resolves the POST
// /extract_solution request schema and 200 response schema.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("extraction: contract document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("extraction: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("extraction: invalid contract: %w", err)
	}

	if doc.Paths == nil {
		return nil, errors.New("extraction: contract has no paths")
	}
	item := doc.Paths.Find(contractPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("extraction: contract does not describe POST %s", contractPath)
	}
	op := item.Post

	contract := &Contract{}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if media := op.RequestBody.Value.Content.Get("application/json"); media != nil && media.Schema != nil {
			contract.request = media.Schema.Value
		}
	}
	if op.Responses != nil {
		if ref := op.Responses.Status(http.StatusOK); ref != nil && ref.Value != nil {
			if media := ref.Value.Content.Get("application/json"); media != nil && media.Schema != nil {
				contract.response = media.Schema.Value
			}
		}
	}
	if contract.request == nil || contract.response == nil {
		return nil, errors.New("extraction: contract lacks request or 200 response schema")
	}
	return contract, nil
}

// ValidateRequest checks an encoded request body.
func (c *Contract) ValidateRequest(body []byte) error {
	return visit(c.request, body)
}

// ValidateResponse checks an encoded 200 response body.
func (c *Contract) ValidateResponse(body []byte) error {
	return visit(c.response, body)
}

func visit(schema *openapi3.Schema, body []byte) error {
	if schema == nil {
		return nil
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("extraction: decode body: %w", err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("extraction: body does not match contract: %w", err)
	}
	return nil
}
