package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Organize Activities API",
        "description": "Aggregated campaign activities (call assignments, events, surveys, tasks) per organization",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Activities",
            "description": "Merged activity views of an organization"
        },
        {
            "name": "Campaigns",
            "description": "Activities scoped to a campaign"
        },
        {
            "name": "Ops",
            "description": "Health, readiness and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Readiness check (PostgreSQL, Redis)",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities": {
            "get": {
                "tags": [
                    "Activities"
                ],
                "summary": "List all activities, most recently visible first",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "campaignId",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityListEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities/current": {
            "get": {
                "tags": [
                    "Activities"
                ],
                "summary": "List activities still visible today",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityListEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities/archived": {
            "get": {
                "tags": [
                    "Activities"
                ],
                "summary": "List activities whose visibility window has ended",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "campaignId",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityListEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities/archived/standalone": {
            "get": {
                "tags": [
                    "Activities"
                ],
                "summary": "List archived activities without a campaign",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityListEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities/overview": {
            "get": {
                "tags": [
                    "Activities"
                ],
                "summary": "Today, tomorrow and the rest of the week",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "campaignId",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityOverviewEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/campaigns/{campaignId}/activities": {
            "get": {
                "tags": [
                    "Campaigns"
                ],
                "summary": "List current activities of a campaign",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "campaignId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityListEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/campaigns/{campaignId}/overview": {
            "get": {
                "tags": [
                    "Campaigns"
                ],
                "summary": "Overview scoped to one campaign",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "campaignId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ActivityOverviewEnvelope"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities/export": {
            "get": {
                "tags": [
                    "Activities"
                ],
                "summary": "Download activities as CSV or PDF",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "scope",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "all",
                            "current",
                            "archived",
                            "standalone"
                        ],
                        "default": "current"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ],
                        "default": "csv"
                    },
                    {
                        "name": "campaignId",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rendered document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "202": {
                        "description": "Sources still loading",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid export request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Upstream fetch failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/orgs/{orgId}/activities/refresh": {
            "post": {
                "tags": [
                    "Activities"
                ],
                "summary": "Drop cached source lists and reload them in the background",
                "parameters": [
                    {
                        "name": "orgId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Refresh queued",
                        "schema": {
                            "$ref": "#/definitions/RefreshEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid identifier",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Refresh queue unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "OrganizationRef": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "CampaignRef": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "Activity": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string",
                    "enum": [
                        "callAssignment",
                        "event",
                        "survey",
                        "task"
                    ]
                },
                "data": {
                    "type": "object",
                    "description": "The call assignment, event, survey or task as stored upstream"
                },
                "visibleFrom": {
                    "type": "string",
                    "format": "date-time",
                    "x-nullable": true
                },
                "visibleUntil": {
                    "type": "string",
                    "format": "date-time",
                    "x-nullable": true
                }
            }
        },
        "ActivityOverview": {
            "type": "object",
            "properties": {
                "today": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Activity"
                    }
                },
                "tomorrow": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Activity"
                    }
                },
                "alsoThisWeek": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Activity"
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseMeta": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "loading",
                        "errored",
                        "resolved"
                    ]
                },
                "count": {
                    "type": "integer"
                },
                "processing_time_ms": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "$ref": "#/definitions/ResponseMeta"
                }
            }
        },
        "ActivityListEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Activity"
                    }
                },
                "meta": {
                    "$ref": "#/definitions/ResponseMeta"
                }
            }
        },
        "ActivityOverviewEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/ActivityOverview"
                },
                "meta": {
                    "$ref": "#/definitions/ResponseMeta"
                }
            }
        },
        "RefreshEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "orgId": {
                            "type": "integer"
                        },
                        "sources": {
                            "type": "array",
                            "items": {
                                "type": "string"
                            }
                        }
                    }
                }
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
