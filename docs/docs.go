// Package docs holds the OpenAPI description served at /swagger.
//
//go:generate swag init -g cmd/server/main.go -d ../ -o . --v3.1
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "openapi": "3.1.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "BricksFlow Support",
            "email": "support@bricksflow.example.com"
        },
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "//{{.Host}}{{.BasePath}}"
        }
    ],
    "paths": {},
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "description": "Bearer token authentication. Format: \"Bearer {token}\"",
                "type": "apiKey",
                "name": "Authorization",
                "in": "header"
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "BricksFlow API",
	Description:      "Brick factory management: production, materials, sales, payroll, expenses and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
