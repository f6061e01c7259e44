// Package docs registers the Swagger document served at /swagger/*.
// Keep it in step with the godoc annotations on the HTTP handlers.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusBody"}}
                }
            }
        },
        "/update-credentials": {
            "post": {
                "description": "Clears stored tokens, logs in with the new account and swaps the active session. On failure the previous session keeps serving.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Rotate Garmin account credentials",
                "parameters": [
                    {"type": "string", "description": "admin key", "name": "X-API-Key", "in": "header"},
                    {"description": "new credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateCredentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatusBody"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/user/name": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Full name of the signed-in account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.NameBody"}}
                }
            }
        },
        "/sleep": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Sleep summary for one night",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SleepSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/hr": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Heart rate summary with timestamped samples",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HeartRateSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/hrv": {
            "get": {
                "description": "Days that fail upstream or carry no data are left out.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "HRV per day over a date range",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to seven days ago", "name": "start", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HRVRange"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/steps": {
            "get": {
                "description": "Returns the upstream JSON unchanged. Upstream failures are reported as 200 {\"error\": \"Error: ...\"}.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Garmin Connect data passthrough",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/stress": {
            "get": {
                "description": "Returns the upstream JSON unchanged. Upstream failures are reported as 200 {\"error\": \"Error: ...\"}.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Garmin Connect data passthrough",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/activities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Garmin Connect data passthrough",
                "parameters": [
                    {"type": "integer", "description": "activity count, defaults to 10", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        },
        "/goals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Garmin Connect data passthrough",
                "parameters": [
                    {"enum": ["active", "future", "past"], "type": "string", "description": "goal type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "domain.HRVEntry": {
            "type": "object",
            "properties": {
                "data": {},
                "date": {"type": "string"}
            }
        },
        "domain.HRVRange": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.HRVEntry"}},
                "period": {"$ref": "#/definitions/domain.Period"}
            }
        },
        "domain.HeartRatePoint": {
            "type": "object",
            "properties": {
                "bpm": {},
                "time": {"type": "string"}
            }
        },
        "domain.HeartRateSummary": {
            "type": "object",
            "properties": {
                "avg_hr": {},
                "date": {},
                "max_hr": {},
                "min_hr": {},
                "resting_hr": {},
                "timeseries": {"type": "array", "items": {"$ref": "#/definitions/domain.HeartRatePoint"}}
            }
        },
        "domain.Period": {
            "type": "object",
            "properties": {
                "end": {"type": "string"},
                "start": {"type": "string"}
            }
        },
        "domain.SleepSummary": {
            "type": "object",
            "properties": {
                "awake_count": {},
                "awake_hours": {"type": "number"},
                "awake_seconds": {},
                "dasd": {"type": "object", "additionalProperties": true},
                "date": {},
                "deep_hours": {"type": "number"},
                "deep_seconds": {},
                "light_hours": {"type": "number"},
                "light_seconds": {},
                "quality": {},
                "rem_hours": {"type": "number"},
                "rem_seconds": {},
                "restless_percentage": {},
                "restless_seconds": {},
                "sleep_score": {},
                "timeseries": {"type": "array", "items": {}},
                "total_hours": {"type": "number"},
                "total_seconds": {}
            }
        },
        "http.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "http.NameBody": {
            "type": "object",
            "properties": {
                "name": {}
            }
        },
        "http.StatusBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "http.UpdateCredentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3011",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Garmin Gateway API",
	Description:      "Personal Garmin Connect health data over a small JSON API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
