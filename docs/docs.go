// Package docs holds the swagger description served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": [
        "http"
    ],
    "paths": {
        "/dashboard/tasks": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Filtered task table",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "required": false,
                        "description": "all, completed, pending or overdue"
                    },
                    {
                        "in": "query",
                        "name": "priority",
                        "type": "string",
                        "required": false,
                        "description": "Urgent, Less Urgent, Free Time, Custom or all"
                    },
                    {
                        "in": "query",
                        "name": "source",
                        "type": "string",
                        "required": false,
                        "description": "all, director or self"
                    },
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "required": false,
                        "description": "Search text"
                    }
                ]
            }
        },
        "/dashboard/projects": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Filtered project table",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "required": false,
                        "description": "Active, Completed, On Hold or all"
                    },
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "required": false,
                        "description": "Search text"
                    }
                ]
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": [
                    "dashboard"
                ],
                "summary": "Dashboard counters",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/employees": {
            "get": {
                "tags": [
                    "employees"
                ],
                "summary": "Employee directory",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/tasks": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Create a new task",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateTaskRequest"
                        }
                    }
                ]
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Get task by ID",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Update a task",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateTaskRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "tasks"
                ],
                "summary": "Delete a task",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ]
            }
        },
        "/tasks/{id}/status": {
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Change task status and work done",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.TaskProgressRequest"
                        }
                    }
                ]
            }
        },
        "/tasks/{id}/extension-request": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Ask for a new deadline",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.ExtensionRequestInput"
                        }
                    }
                ]
            }
        },
        "/tasks/{id}/extension-status": {
            "put": {
                "tags": [
                    "tasks"
                ],
                "summary": "Approve or reject an extension request",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "No pending request",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.ExtensionResponse"
                        }
                    }
                ]
            }
        },
        "/tasks/{id}/completion-request": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Ask a manager to sign off the task",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ]
            }
        },
        "/tasks/{id}/completion-approval": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Settle a completion request",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "No pending request",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.CompletionDecision"
                        }
                    }
                ]
            }
        },
        "/tasks/{id}/comments": {
            "post": {
                "tags": [
                    "tasks"
                ],
                "summary": "Comment on a task",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Empty comment",
                        "schema": {
                            "$ref": "#/definitions/ports.CommentFailureResponse"
                        }
                    },
                    "502": {
                        "description": "Gateway failure",
                        "schema": {
                            "$ref": "#/definitions/ports.CommentFailureResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddCommentRequest"
                        }
                    }
                ]
            }
        },
        "/tasks/{id}/watch": {
            "get": {
                "tags": [
                    "tasks"
                ],
                "summary": "Stream fresh copies of a task",
                "produces": [
                    "text/event-stream"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ]
            }
        },
        "/projects": {
            "post": {
                "tags": [
                    "projects"
                ],
                "summary": "Create a new project",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ports.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateProjectRequest"
                        }
                    }
                ]
            }
        },
        "/projects/{id}": {
            "get": {
                "tags": [
                    "projects"
                ],
                "summary": "Get project by ID",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Project ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "projects"
                ],
                "summary": "Update a project",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Project ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateProjectRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "projects"
                ],
                "summary": "Delete a project",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Project ID"
                    }
                ]
            }
        },
        "/projects/{id}/progress": {
            "put": {
                "tags": [
                    "projects"
                ],
                "summary": "Set project progress",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Project ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.ProgressRequest"
                        }
                    }
                ]
            }
        },
        "/projects/{id}/comments": {
            "post": {
                "tags": [
                    "projects"
                ],
                "summary": "Comment on a project",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "502": {
                        "description": "Gateway failure",
                        "schema": {
                            "$ref": "#/definitions/ports.CommentFailureResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Project ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddCommentRequest"
                        }
                    }
                ]
            }
        },
        "/work": {
            "post": {
                "tags": [
                    "work"
                ],
                "summary": "Log independent work",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateWorkRequest"
                        }
                    }
                ]
            }
        },
        "/work/employee/{id}": {
            "get": {
                "tags": [
                    "work"
                ],
                "summary": "An employee's work entries",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Employee ID"
                    }
                ]
            }
        },
        "/work/{id}": {
            "get": {
                "tags": [
                    "work"
                ],
                "summary": "Get a work entry",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Work entry ID"
                    }
                ]
            },
            "put": {
                "tags": [
                    "work"
                ],
                "summary": "Update a work entry",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Work entry ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateWorkRequest"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "work"
                ],
                "summary": "Delete a work entry",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Work entry ID"
                    }
                ]
            }
        },
        "/work/{id}/comments": {
            "post": {
                "tags": [
                    "work"
                ],
                "summary": "Comment on a work entry",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Work entry ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddCommentRequest"
                        }
                    }
                ]
            }
        }
    },
    "definitions": {
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "ports.CommentFailureResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "draft": {
                    "type": "string"
                }
            }
        },
        "ports.AddCommentRequest": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string"
                }
            }
        },
        "ports.CreateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "assignees": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "assigneeNames": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "projectId": {
                    "type": "string"
                },
                "projectName": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string"
                },
                "reminderDate": {
                    "type": "string"
                },
                "workDone": {
                    "type": "integer"
                },
                "needsDirectorInput": {
                    "type": "boolean"
                }
            }
        },
        "ports.UpdateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "assignees": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "assigneeNames": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "projectId": {
                    "type": "string"
                },
                "projectName": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string"
                },
                "reminderDate": {
                    "type": "string"
                },
                "needsDirectorInput": {
                    "type": "boolean"
                }
            }
        },
        "ports.TaskProgressRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "workDone": {
                    "type": "integer"
                }
            }
        },
        "ports.ExtensionRequestInput": {
            "type": "object",
            "properties": {
                "proposedDeadline": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "ports.ExtensionResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "responseComment": {
                    "type": "string"
                }
            }
        },
        "ports.CreateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "assignedEmployeeId": {
                    "type": "string"
                },
                "assignedEmployeeName": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string"
                },
                "progress": {
                    "type": "integer"
                }
            }
        },
        "ports.UpdateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "assignedEmployeeId": {
                    "type": "string"
                },
                "assignedEmployeeName": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string"
                },
                "progress": {
                    "type": "integer"
                }
            }
        },
        "ports.CreateWorkRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "workDescription": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "timeSpent": {
                    "type": "number"
                }
            }
        },
        "ports.UpdateWorkRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "workDescription": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "timeSpent": {
                    "type": "number"
                }
            }
        },
        "http.CompletionDecision": {
            "type": "object",
            "properties": {
                "approve": {
                    "type": "boolean"
                }
            }
        },
        "http.ProgressRequest": {
            "type": "object",
            "properties": {
                "progress": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the session token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskMaster Dashboard API",
	Description:      "Dashboard backend for the TaskMaster REST API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
