// Package docs содержит описание API для swagger по аннотациям обработчиков.
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
        "/batches": {
            "post": {
                "description": "Один контейнер каждого вкуса; неизвестный вкус отменяет всю партию",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Приготовить партию",
                "parameters": [
                    {
                        "description": "Flavors",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.flavorsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.batchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/batches/publish": {
            "post": {
                "description": "Публикует заявку в Kafka, производство идёт асинхронно",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Поставить партию в очередь",
                "parameters": [
                    {
                        "description": "Flavors",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.flavorsRequest"}
                    }
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/cartons": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cartons"],
                "summary": "Остатки в контейнерах",
                "parameters": [
                    {
                        "type": "array",
                        "items": {"type": "string"},
                        "collectionFormat": "multi",
                        "description": "Flavor",
                        "name": "flavor",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Carton"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/recipes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Список рецептов",
                "parameters": [
                    {"type": "integer", "description": "Limit", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Recipe"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Сохранить рецепт",
                "parameters": [
                    {
                        "description": "Recipe",
                        "name": "recipe",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.Recipe"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Recipe"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/recipes/{flavor}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Рецепт по вкусу",
                "parameters": [
                    {"type": "string", "description": "Flavor", "name": "flavor", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Recipe"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sundaes": {
            "post": {
                "description": "По шарику каждого запрошенного вкуса; неизвестные и закончившиеся вкусы возвращаются в missing",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sundaes"],
                "summary": "Собрать сандей",
                "parameters": [
                    {
                        "description": "Flavors",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.flavorsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Sundae"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "domain.Carton": {
            "type": "object",
            "properties": {
                "flavor": {"type": "string"},
                "scoops": {"type": "integer"}
            }
        },
        "domain.Recipe": {
            "type": "object",
            "properties": {
                "flavor": {"type": "string"},
                "ingredients": {"type": "array", "items": {"$ref": "#/definitions/domain.RecipeIngredient"}}
            }
        },
        "domain.RecipeIngredient": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.Sundae": {
            "type": "object",
            "properties": {
                "missing": {"type": "array", "items": {"type": "string"}},
                "scoops": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.batchResponse": {
            "type": "object",
            "properties": {
                "cartons_produced": {"type": "integer"}
            }
        },
        "http.flavorsRequest": {
            "type": "object",
            "properties": {
                "flavors": {"type": "array", "items": {"type": "string"}}
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
	Title:            "Ice Cream Parlor API",
	Description:      "Сандей из остатков и производство партий мороженого",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
