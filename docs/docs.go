// Package docs: documento OpenAPI registrado para el UI de swagger.
// Generado con swag y recortado a mano a los endpoints actuales.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/adoptions": {
            "post": {
                "summary": "Adopta una mascota on-chain",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {"name": {"type": "string"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "adopción exitosa"},
                    "400": {"description": "nombre vacío"},
                    "401": {"description": "sin sesión de wallet"},
                    "409": {"description": "ya tiene mascota / intento en curso"},
                    "502": {"description": "la transacción falló"},
                    "504": {"description": "sin confirmación a tiempo"}
                }
            }
        },
        "/state": {
            "get": {
                "summary": "Proyección completa de ownership",
                "produces": ["application/json"],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/me/pet": {
            "get": {
                "summary": "Mascota de la wallet activa",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "ok"},
                    "401": {"description": "sin sesión de wallet"},
                    "404": {"description": "todavía no adoptó"}
                }
            }
        },
        "/me/pomodoro": {
            "post": {
                "summary": "Arranca el temporizador (5, 15 o 25 minutos)",
                "responses": {"200": {"description": "ok"}, "400": {"description": "preset inválido"}}
            },
            "get": {
                "summary": "Estado del temporizador",
                "responses": {"200": {"description": "ok"}, "404": {"description": "no hay temporizador"}}
            },
            "delete": {
                "summary": "Detiene el temporizador",
                "responses": {"204": {"description": "detenido"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "pet-pomodoro API",
	Description:      "Adopción de mascotas on-chain y temporizador pomodoro.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
