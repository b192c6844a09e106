package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Scheduler API",
        "description": "AI-Driven Practical Exam Scheduler for Engineering Colleges",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Schedule generation and planning"},
        {"name": "Upload", "description": "Roster and image ingestion"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check with metrics snapshot",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/schedule/generate": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate a practical exam schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/schedule/validate": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Validate schedule inputs without generating",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/schedule/auto-select-dates": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Select optimal exam dates from an availability pool",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AutoSelectDatesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/schedule/calculate-requirements": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Calculate scheduling requirements",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateRequirementsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/schedule/export": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Render a generated schedule as CSV or PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        },
        "/api/upload/parse-file": {
            "post": {
                "tags": ["Upload"],
                "summary": "Parse an uploaded CSV/TXT roster",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/upload/analyze-image": {
            "post": {
                "tags": ["Upload"],
                "summary": "Analyze a schedule image with the vision backend",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "415": {"description": "Unsupported image type"},
                    "502": {"description": "Vision backends unavailable"},
                    "503": {"description": "Vision not configured"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "Examiner": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "ExamDate": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "15-01-25"},
                "subject": {"type": "string"},
                "register_numbers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ScheduleRequest": {
            "type": "object",
            "properties": {
                "exam_metadata": {"type": "object"},
                "register_numbers": {"type": "array", "items": {"type": "string"}},
                "semesters": {"type": "array", "items": {"type": "object"}},
                "dates": {"type": "array", "items": {"type": "string"}},
                "exam_dates": {"type": "array", "items": {"$ref": "#/definitions/ExamDate"}},
                "labs": {"type": "array", "items": {"type": "string"}},
                "internal_examiners": {"type": "array", "items": {"$ref": "#/definitions/Examiner"}},
                "external_examiners": {"type": "array", "items": {"$ref": "#/definitions/Examiner"}}
            }
        },
        "AutoSelectDatesRequest": {
            "type": "object",
            "required": ["available_dates", "student_count"],
            "properties": {
                "available_dates": {"type": "array", "items": {"type": "string"}},
                "student_count": {"type": "integer"},
                "min_gap_days": {"type": "integer"},
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CalculateRequirementsRequest": {
            "type": "object",
            "properties": {
                "student_count": {"type": "integer"},
                "available_dates": {"type": "integer"}
            }
        },
        "ExportScheduleRequest": {
            "type": "object",
            "required": ["schedule"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "schedule": {"type": "object"}
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
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
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "fieldErrors": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}},
                "warnings": {"type": "array", "items": {"type": "string"}},
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
