// Package docs provides the generated swagger specification.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@lendflow.app"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register new user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Refresh tokens",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "List customers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "Create customer",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/customers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "Get customer",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "Update customer",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "Delete customer",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/customers/{id}/kyc": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "Update KYC status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/customers/{id}/applications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Customers"],
                "summary": "List customer applications",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "List loan applications",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Create loan application",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/applications/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Get loan application",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Submit application",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}/review": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Start application review",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}/approve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Approve application",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Reject application",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Applications"],
                "summary": "Application status history",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Dashboard"],
                "summary": "Dashboard statistics",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "LendFlow LOS API",
	Description:      "Loan origination system API: customers, KYC, loan applications and decisioning.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
