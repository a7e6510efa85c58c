package api

import _ "embed"

// SwaggerJSON is the embedded OpenAPI document for the REST surface.
//
//go:embed swagger/users.swagger.json
var SwaggerJSON []byte
