// Package docs expone el documento Swagger 2.0 de la API (servido en /docs).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo documento registrado en swag.
type SwaggerInfo struct{}

// ReadDoc devuelve el documento JSON.
func (SwaggerInfo) ReadDoc() string { return swaggerJSON }

func init() {
	swag.Register(swag.Name, SwaggerInfo{})
}
