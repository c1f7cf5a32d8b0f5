package openapi

//go:generate go tool oapi-codegen -config cfg.yaml openapi.yaml

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// GetSwagger parses the embedded API document. Servers are dropped so request
// validation matches paths on any host.
func GetSwagger() (*openapi3.T, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	swagger.Servers = nil
	return swagger, nil
}
