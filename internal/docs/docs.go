// Package docs holds the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/cempulse/main.go -o internal/docs
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.userResponse"}}
                }
            }
        },
        "/api/genai": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["advisory"],
                "summary": "Ask the process advisor",
                "parameters": [
                    {
                        "description": "Requested processes and question",
                        "name": "body",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/handler.advisoryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Advice"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/processes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["processes"],
                "summary": "List visible processes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.processListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/processes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["processes"],
                "summary": "Get a process with its recent parameter series",
                "parameters": [
                    {"type": "string", "description": "Process id (e.g. kiln-operation)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.processDetailResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/approvals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["approvals"],
                "summary": "List approval requests for visible processes",
                "parameters": [
                    {"type": "string", "description": "pending, approved or rejected", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.approvalListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["approvals"],
                "summary": "Submit an analysis for approval",
                "parameters": [
                    {
                        "description": "Process and analysis",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.createApprovalRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ApprovalRequest"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/approvals/{id}/decision": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["approvals"],
                "summary": "Approve or reject a pending request",
                "parameters": [
                    {"type": "string", "description": "Approval request id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Decision",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.decideApprovalRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ApprovalRequest"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "definitions": {
        "domain.Advice": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "processes": {"type": "array", "items": {"type": "string"}},
                "suggestions": {"type": "array", "items": {"$ref": "#/definitions/domain.Suggestion"}}
            }
        },
        "domain.Suggestion": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "severity": {"type": "string", "enum": ["info", "high"]}
            }
        },
        "domain.ApprovalRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "process_id": {"type": "string"},
                "analysis": {"type": "string"},
                "requested_by": {"type": "string"},
                "requester_role": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "created_at": {"type": "string"},
                "decided_by": {"type": "string"},
                "decided_at": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "domain.Process": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "stage": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "sampling_interval_seconds": {"type": "integer"},
                "parameters": {"type": "array", "items": {"type": "object"}},
                "sensors": {"type": "array", "items": {"type": "object"}},
                "alerts": {"type": "array", "items": {"type": "object"}},
                "recommended_actions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.UserSummary": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "role": {"type": "string"},
                "allowed": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.advisoryRequest": {
            "type": "object",
            "properties": {
                "processes": {"type": "array", "maxItems": 32, "items": {"type": "string"}},
                "message": {"type": "string", "maxLength": 4000}
            }
        },
        "handler.approvalListResponse": {
            "type": "object",
            "properties": {
                "approvals": {"type": "array", "items": {"$ref": "#/definitions/domain.ApprovalRequest"}}
            }
        },
        "handler.createApprovalRequest": {
            "type": "object",
            "required": ["analysis", "process_id"],
            "properties": {
                "process_id": {"type": "string", "maxLength": 128},
                "analysis": {"type": "string", "maxLength": 8000}
            }
        },
        "handler.decideApprovalRequest": {
            "type": "object",
            "required": ["decision"],
            "properties": {
                "decision": {"type": "string", "enum": ["approved", "rejected"]},
                "note": {"type": "string", "maxLength": 2000}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.processDetailResponse": {
            "type": "object",
            "properties": {
                "process": {"$ref": "#/definitions/domain.Process"},
                "series": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.processListResponse": {
            "type": "object",
            "properties": {
                "processes": {"type": "array", "items": {"$ref": "#/definitions/domain.Process"}}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.UserSummary"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CemPulse Plant Ops API",
	Description:      "Role-gated process monitoring, advisory and approvals for a cement plant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
