// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/bootstrap": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Start the app",
                "parameters": [
                    {"type": "string", "description": "Shared letter id", "name": "letterId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/view": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Render the current page",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/navigation": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Move to another page",
                "parameters": [
                    {"description": "Target page", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.navigationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/session": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Enter the passcode",
                "parameters": [
                    {"description": "Passcode", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.viewResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log out",
                "description": "Only available from the home page.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["letters"],
                "summary": "List who can write a letter",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.authorResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/letters": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["letters"],
                "summary": "Submit a new letter",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Message", "name": "message", "in": "formData", "required": true},
                    {"type": "string", "description": "Author; defaults to the first user", "name": "author_id", "in": "formData"},
                    {"type": "string", "description": "YouTube link", "name": "youtube_music_url", "in": "formData"},
                    {"type": "string", "description": "upload or url", "name": "photo_mode", "in": "formData"},
                    {"type": "string", "description": "Photo link in url mode", "name": "photo_url", "in": "formData"},
                    {"type": "file", "description": "Photo in upload mode, image/*, at most 5 MiB", "name": "photo", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.viewResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.viewResponse"}}
                }
            }
        },
        "/api/letters/{id}/share": {
            "post": {
                "produces": ["application/json"],
                "tags": ["letters"],
                "summary": "Copy a letter's share link",
                "parameters": [
                    {"type": "string", "description": "Letter id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shareResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"passcode": {"type": "string"}}
        },
        "handler.navigationRequest": {
            "type": "object",
            "required": ["to"],
            "properties": {
                "to": {"type": "string", "enum": ["home", "add", "letter"]},
                "letter_id": {"type": "string"}
            }
        },
        "handler.authorResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "handler.shareResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "copied": {"type": "boolean"},
                "copied_for_ms": {"type": "integer"}
            }
        },
        "handler.letterCardResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "message": {"type": "string"},
                "photo_url": {"type": "string"},
                "author_id": {"type": "string"},
                "author_name": {"type": "string"},
                "author_color": {"type": "string"},
                "created_at": {"type": "string"},
                "display_date": {"type": "string"}
            }
        },
        "handler.letterDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "message": {"type": "string"},
                "photo_url": {"type": "string"},
                "author_id": {"type": "string"},
                "author_name": {"type": "string"},
                "author_color": {"type": "string"},
                "created_at": {"type": "string"},
                "display_date": {"type": "string"},
                "youtube_music_url": {"type": "string"},
                "embed_url": {"type": "string"},
                "share_url": {"type": "string"},
                "copied": {"type": "boolean"}
            }
        },
        "handler.gateResponse": {
            "type": "object",
            "properties": {
                "passcode": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.feedResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["empty", "ready"]},
                "letters": {"type": "array", "items": {"$ref": "#/definitions/handler.letterCardResponse"}}
            }
        },
        "handler.detailResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["found", "not_found"]},
                "letter": {"$ref": "#/definitions/handler.letterDetailResponse"}
            }
        },
        "handler.draftResponse": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "message": {"type": "string"},
                "author_id": {"type": "string"},
                "youtube_music_url": {"type": "string"},
                "photo_mode": {"type": "string", "enum": ["upload", "url"]},
                "photo_url": {"type": "string"},
                "photo_name": {"type": "string"}
            }
        },
        "handler.composeResponse": {
            "type": "object",
            "properties": {
                "draft": {"$ref": "#/definitions/handler.draftResponse"},
                "authors": {"type": "array", "items": {"$ref": "#/definitions/handler.authorResponse"}},
                "error": {"type": "string"},
                "max_photo_bytes": {"type": "integer"}
            }
        },
        "handler.viewResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["gate", "home", "letter", "add"]},
                "gate": {"$ref": "#/definitions/handler.gateResponse"},
                "feed": {"$ref": "#/definitions/handler.feedResponse"},
                "letter": {"$ref": "#/definitions/handler.detailResponse"},
                "compose": {"$ref": "#/definitions/handler.composeResponse"}
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
	Title:            "Love Letters API",
	Description:      "Passcode-gated letters feed: session gate, navigation, feed, letter detail and composer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
