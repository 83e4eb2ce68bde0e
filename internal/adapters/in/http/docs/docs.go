// Package docs registers the OpenAPI document with swag so echo-swagger can
// serve it under /swagger/.
package docs

import (
	"jobmatch/internal/adapters/in/http/api"

	"github.com/swaggo/swag"
)

type document struct{}

// ReadDoc returns the document as JSON, or an empty object if it fails to load.
func (document) ReadDoc() string {
	doc, err := api.GetSwagger()
	if err != nil {
		return "{}"
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func init() {
	swag.Register(swag.Name, document{})
}
