// Package docs registers the OpenAPI document served at /api-docs. It follows
// the layout swag init produces; paths and definitions are kept in step with
// the handler annotations by docs_test.go.
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
        "/api/invoices": {
            "get": {
                "description": "Every invoice with its supplier and lines. Invoices whose supplier is missing are left out.",
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List invoices",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceWithLines"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "description": "The amount is stored as given. Lines must reference existing items.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Create an invoice with its lines",
                "parameters": [
                    {"description": "Invoice header and lines", "name": "invoice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateInvoiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.InvoiceWithLines"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/invoices/{invoiceId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [
                    {"type": "string", "description": "Invoice ID", "name": "invoiceId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InvoiceWithLines"}},
                    "404": {"description": "Invoice not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List catalog items",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Item"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Duplicate name and price pairs are accepted",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Create a catalog item",
                "parameters": [
                    {"description": "Item data", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Item"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/items/lookup": {
            "get": {
                "description": "First item whose name matches case-insensitively and whose price text matches exactly",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Find an item by exact name and price",
                "parameters": [
                    {"type": "string", "description": "Item name", "name": "name", "in": "query", "required": true},
                    {"type": "string", "description": "Exact price text", "name": "price", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Item"}},
                    "400": {"description": "Missing query parameters", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "No matching item", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/items/search": {
            "get": {
                "description": "Items whose name contains the given text (case-insensitive) and whose price is at most the given bound",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Search catalog items",
                "parameters": [
                    {"type": "string", "description": "Name fragment", "name": "name", "in": "query"},
                    {"type": "string", "description": "Maximum price", "name": "price", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Item"}}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/reports/summary": {
            "get": {
                "description": "Totals, averages, the five most recent invoices and the five suppliers with the most invoices",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Ledger summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ReportSummaryResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/api/suppliers": {
            "get": {
                "description": "Every supplier with its invoices, each invoice with its lines and items",
                "produces": ["application/json"],
                "tags": ["suppliers"],
                "summary": "List suppliers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.SupplierWithInvoices"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["suppliers"],
                "summary": "Create a supplier",
                "parameters": [
                    {"description": "Supplier data", "name": "supplier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateSupplierRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Supplier"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.InvoiceLineWithItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "invoiceId": {"type": "string"},
                "item": {"$ref": "#/definitions/domain.Item"},
                "itemId": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.InvoiceWithLines": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "invoiceLines": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceLineWithItem"}},
                "invoiceNumber": {"type": "string"},
                "supplier": {"$ref": "#/definitions/domain.Supplier"},
                "supplierId": {"type": "string"}
            }
        },
        "domain.Item": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "domain.Supplier": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "domain.SupplierWithInvoices": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "id": {"type": "string"},
                "invoices": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceWithLines"}},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "model.CreateInvoiceRequest": {
            "type": "object",
            "properties": {
                "invoice": {"$ref": "#/definitions/model.InvoiceHeaderRequest"},
                "invoiceLines": {"type": "array", "items": {"$ref": "#/definitions/model.InvoiceLineRequest"}}
            }
        },
        "model.CreateItemRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Table en bois"},
                "price": {"type": "string", "example": "750.00"}
            }
        },
        "model.CreateSupplierRequest": {
            "type": "object",
            "required": ["address", "name", "phone"],
            "properties": {
                "address": {"type": "string", "example": "123 Rue Industrielle, Casablanca"},
                "name": {"type": "string", "example": "Matier Fer"},
                "phone": {"type": "string", "example": "+212 522 123 456"}
            }
        },
        "model.ErrorDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"$ref": "#/definitions/model.ErrorDetail"}},
                "kind": {"type": "string", "example": "validation"},
                "message": {"type": "string", "example": "Invalid input format"},
                "status": {"type": "string", "example": "Bad Request"}
            }
        },
        "model.InvoiceHeaderRequest": {
            "type": "object",
            "required": ["invoiceNumber", "supplierId"],
            "properties": {
                "amount": {"type": "string", "example": "1500.00"},
                "invoiceNumber": {"type": "string", "example": "INV-2025-004"},
                "supplierId": {"type": "string"}
            }
        },
        "model.InvoiceLineRequest": {
            "type": "object",
            "properties": {
                "itemId": {"type": "string"},
                "quantity": {"type": "integer", "example": 2}
            }
        },
        "model.ReportSummaryResponse": {
            "type": "object",
            "properties": {
                "averageInvoiceAmount": {"type": "string", "example": "1500.00"},
                "averageItemPrice": {"type": "string", "example": "437.50"},
                "highestItemPrice": {"type": "string", "example": "750.00"},
                "lowestItemPrice": {"type": "string", "example": "125.00"},
                "recentInvoices": {"type": "array", "items": {"$ref": "#/definitions/domain.InvoiceWithLines"}},
                "topSuppliers": {"type": "array", "items": {"$ref": "#/definitions/model.SupplierStatsResponse"}},
                "totalAmount": {"type": "string", "example": "1500.00"},
                "totalInvoices": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalSuppliers": {"type": "integer"}
            }
        },
        "model.SupplierStatsResponse": {
            "type": "object",
            "properties": {
                "invoiceCount": {"type": "integer"},
                "supplier": {"$ref": "#/definitions/domain.Supplier"},
                "totalAmount": {"type": "string", "example": "1500.00"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Supplier Invoice API",
	Description:      "Bookkeeping API for suppliers, catalog items and invoices.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
