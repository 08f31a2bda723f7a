// Package gateway holds the generated OpenAPI documentation for the
// AuthGate HTTP API. Regenerate with:
//
//	swag init -g internal/gateway/http/router.go -o api/gateway
package gateway

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {"$ref": "#/definitions/gatesdk.HealthResponse"}
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {"$ref": "#/definitions/gatesdk.HealthResponse"}
                    },
                    "503": {
                        "description": "service not ready",
                        "schema": {"$ref": "#/definitions/gatesdk.HealthResponse"}
                    }
                }
            }
        },
        "/v1/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Login"],
                "summary": "Authenticate with an explicit auth type",
                "parameters": [
                    {
                        "description": "Credentials and auth type",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.LoginRequest"}
                    },
                    {
                        "type": "string",
                        "description": "Auth type when absent from the body (defaults to database)",
                        "name": "auth_type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token pair",
                        "schema": {"$ref": "#/definitions/gatesdk.TokenResponse"}
                    },
                    "400": {
                        "description": "Malformed request or unsupported auth type",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    },
                    "401": {
                        "description": "Authentication failed",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    },
                    "502": {
                        "description": "Federation backend unavailable",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/login/database": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Login"],
                "summary": "Authenticate against the provider's user database",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token pair",
                        "schema": {"$ref": "#/definitions/gatesdk.TokenResponse"}
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/login/federation": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Login"],
                "summary": "Authenticate through the federation backend",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token pair",
                        "schema": {"$ref": "#/definitions/gatesdk.TokenResponse"}
                    },
                    "401": {
                        "description": "Federation rejected the credentials",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    },
                    "502": {
                        "description": "Federation backend unavailable",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/directory/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "Search directory users",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search query",
                        "name": "search",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching users",
                        "schema": {"$ref": "#/definitions/gatesdk.DirectoryUsersResponse"}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "Create a directory user",
                "parameters": [
                    {
                        "description": "New user",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.DirectoryCreateRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created user",
                        "schema": {"$ref": "#/definitions/gatesdk.DirectoryUser"}
                    },
                    "409": {
                        "description": "Username or email already taken",
                        "schema": {"$ref": "#/definitions/gatesdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/mfa/setup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Enroll a user in TOTP MFA",
                "parameters": [
                    {
                        "description": "Username to enroll",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.MFARequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Secret and enrollment URI",
                        "schema": {"$ref": "#/definitions/gatesdk.MFASetupResponse"}
                    }
                }
            }
        },
        "/v1/mfa/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Verify a TOTP code",
                "parameters": [
                    {
                        "description": "Username and code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.MFAVerifyRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Code matched",
                        "schema": {"$ref": "#/definitions/gatesdk.MFAVerifyResponse"}
                    },
                    "401": {
                        "description": "Code did not match or user not enrolled",
                        "schema": {"$ref": "#/definitions/gatesdk.MFAVerifyResponse"}
                    }
                }
            }
        },
        "/v1/mfa/disable": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Disable MFA for a user",
                "parameters": [
                    {
                        "description": "Username",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/gatesdk.MFARequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Success message",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/v1/mfa/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Check MFA enrollment status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Username",
                        "name": "username",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Enrollment status",
                        "schema": {"$ref": "#/definitions/gatesdk.MFAStatusResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "gatesdk.DirectoryCreateRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "gatesdk.DirectoryUser": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "enabled": {"type": "boolean"},
                "first_name": {"type": "string"},
                "id": {"type": "string"},
                "last_name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "gatesdk.DirectoryUsersResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "users": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/gatesdk.DirectoryUser"}
                }
            }
        },
        "gatesdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "description": "Error is the stable failure classification (e.g., \"INVALID_CREDENTIALS\")",
                    "type": "string"
                },
                "error_description": {
                    "description": "ErrorDescription is a human-readable description of the error",
                    "type": "string"
                }
            }
        },
        "gatesdk.HealthChecks": {
            "type": "object",
            "properties": {
                "store": {"type": "string"}
            }
        },
        "gatesdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/gatesdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "gatesdk.LoginRequest": {
            "type": "object",
            "properties": {
                "auth_type": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "gatesdk.MFARequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"}
            }
        },
        "gatesdk.MFASetupResponse": {
            "type": "object",
            "properties": {
                "account": {"type": "string"},
                "enrollment_uri": {"type": "string"},
                "issuer": {"type": "string"},
                "secret": {"type": "string"}
            }
        },
        "gatesdk.MFAStatusResponse": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"}
            }
        },
        "gatesdk.MFAVerifyRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "gatesdk.MFAVerifyResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"}
            }
        },
        "gatesdk.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {
                    "description": "AccessToken is the bearer token minted by the identity provider",
                    "type": "string"
                },
                "expires_in": {
                    "description": "ExpiresIn is the lifetime in seconds of the access token",
                    "type": "integer"
                },
                "message": {
                    "description": "Message notes which strategy authenticated the user",
                    "type": "string"
                },
                "refresh_token": {
                    "description": "RefreshToken is the refresh token, when the provider issues one",
                    "type": "string"
                },
                "token_type": {
                    "description": "TokenType is always \"Bearer\"",
                    "type": "string"
                },
                "username": {
                    "description": "Username echoes the authenticated username",
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "AuthGate API",
	Description:      "Authentication gateway dispatching logins to pluggable strategies (database or federation backed) and managing TOTP-based MFA enrollment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
