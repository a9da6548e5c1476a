// Package api embeds the OpenAPI description of the Flavortown HTTP API.
// The server serves it at /openapi.yaml and renders it at /docs.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
