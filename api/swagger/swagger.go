package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Translation QA API",
        "description": "Translation quality workflow: issues, confirmations, regeneration and verification",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Translation Issues", "description": "Issue backlog and lifecycle transitions"},
        {"name": "Translation Confirmations", "description": "Manual overrides"},
        {"name": "Translations", "description": "Regeneration, verification and manual edits"},
        {"name": "Catalog", "description": "Languages and translation keys"},
        {"name": "Observability", "description": "Workflow counters"}
    ],
    "paths": {
        "/translation-issues": {
            "get": {
                "tags": ["Translation Issues"],
                "summary": "List translation issues",
                "parameters": [
                    {"name": "language_id", "in": "query", "type": "integer"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "severity", "in": "query", "type": "string", "enum": ["critical", "high", "medium", "low"]},
                    {"name": "resolved", "in": "query", "type": "string", "enum": ["true", "false", "all"], "default": "false"},
                    {"name": "limit", "in": "query", "type": "integer", "default": 100},
                    {"name": "offset", "in": "query", "type": "integer", "default": 0}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translation-issues/actions": {
            "post": {
                "tags": ["Translation Issues"],
                "summary": "Resolve, unresolve or delete issues",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "X-Actor", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IssueActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid action or selector", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translation-issues/export": {
            "get": {
                "tags": ["Translation Issues"],
                "summary": "Export issues as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"name": "language_id", "in": "query", "type": "integer"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "severity", "in": "query", "type": "string"},
                    {"name": "resolved", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translation-confirmations": {
            "get": {
                "tags": ["Translation Confirmations"],
                "summary": "List confirmations",
                "parameters": [
                    {"name": "language_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Translation Confirmations"],
                "summary": "Confirm a translation",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "X-Actor", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfirmTranslationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Key or language not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translation-confirmations/{keyId}/{languageId}": {
            "delete": {
                "tags": ["Translation Confirmations"],
                "summary": "Remove a confirmation",
                "parameters": [
                    {"name": "keyId", "in": "path", "required": true, "type": "integer"},
                    {"name": "languageId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translations": {
            "put": {
                "tags": ["Translations"],
                "summary": "Edit a translation; blank text removes it",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "X-Actor", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertTranslationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translations/regenerate": {
            "post": {
                "tags": ["Translations"],
                "summary": "Regenerate machine translations",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translations/verify": {
            "post": {
                "tags": ["Translations"],
                "summary": "Score a candidate translation",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translations/verification-runs": {
            "post": {
                "tags": ["Translations"],
                "summary": "Scan a language and file auto-detected issues",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/languages": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List languages",
                "parameters": [
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/translation-keys": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List translation keys",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Workflow counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "IssueActionRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["resolve", "unresolve", "delete"]},
                "issue_ids": {"type": "array", "items": {"type": "integer"}},
                "key_id": {"type": "integer"},
                "language_id": {"type": "integer"},
                "resolved_by": {"type": "string"}
            }
        },
        "ConfirmTranslationRequest": {
            "type": "object",
            "required": ["key_id", "language_id"],
            "properties": {
                "key_id": {"type": "integer"},
                "language_id": {"type": "integer"},
                "override_reason": {"type": "string"}
            }
        },
        "UpsertTranslationRequest": {
            "type": "object",
            "required": ["key_id", "language_id"],
            "properties": {
                "key_id": {"type": "integer"},
                "language_id": {"type": "integer"},
                "translation_text": {"type": "string"},
                "is_approved": {"type": "boolean"}
            }
        },
        "TargetLanguage": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "RegenerateRequest": {
            "type": "object",
            "required": ["target_languages"],
            "properties": {
                "category": {"type": "string"},
                "key_ids": {"type": "array", "items": {"type": "integer"}},
                "target_languages": {"type": "array", "items": {"$ref": "#/definitions/TargetLanguage"}},
                "overwrite": {"type": "boolean"}
            }
        },
        "VerifyRequest": {
            "type": "object",
            "required": ["original_text"],
            "properties": {
                "original_text": {"type": "string"},
                "translated_text": {"type": "string"},
                "target_language": {"type": "string"},
                "language_code": {"type": "string"}
            }
        },
        "ScanRequest": {
            "type": "object",
            "required": ["language_id"],
            "properties": {
                "language_id": {"type": "integer"},
                "category": {"type": "string"},
                "key_ids": {"type": "array", "items": {"type": "integer"}},
                "threshold": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
