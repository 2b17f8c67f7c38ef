// Package docs registers the OpenAPI description served at /swagger.
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
        "/itineraries/{id}/book": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Book an itinerary date, paid from the wallet",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Business rule violation"}, "404": {"description": "Listing not found"}}
            }
        },
        "/itineraries/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Cancel an itinerary booking at least two days ahead for a full refund",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Cancellation window closed"}, "404": {"description": "Not booked"}}
            }
        },
        "/activities/{id}/book": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Book an activity date, paid from the wallet",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Business rule violation"}, "404": {"description": "Listing not found"}}
            }
        },
        "/activities/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Cancel an activity booking at least two days ahead for a full refund",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Cancellation window closed"}, "404": {"description": "Not booked"}}
            }
        },
        "/tourist/{id}/orders/{orderId}/cancel": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Cancel a processing order and refund its total to the wallet",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Order is not processing"}, "403": {"description": "Not the owner"}, "404": {"description": "Order not found"}}
            }
        },
        "/users/wallet": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["wallet"],
                "summary": "Current wallet balance",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/analytics/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Totals across listings, bookings, orders, refunds and wallets",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Admin only"}}
            }
        },
        "/admin/analytics/daily": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Wallet payments and refunds per day",
                "parameters": [{"type": "integer", "name": "days", "in": "query", "default": 30}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid days parameter"}}
            }
        }
    },
    "definitions": {
        "BookRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {"date": {"type": "string", "example": "2026-11-20"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Voyago API",
	Description:      "Tourism bookings, wallet refunds and product orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
