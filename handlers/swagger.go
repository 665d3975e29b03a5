package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the blog API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>blog-service Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "blog-service", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Post": { "type": "object", "properties": {
        "id": {"type":"integer"}, "title": {"type":"string"}, "content": {"type":"string"}, "label": {"type":"string"},
        "slug": {"type":"string"}, "image": {"type":"string","nullable":true},
        "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "PostInput": { "type": "object", "properties": {
        "title": {"type":"string"}, "content": {"type":"string"}, "label": {"type":"string"},
        "image": {"type":"string","description":"URL, or a file when sent as multipart/form-data"} } },
      "Error": { "type": "object", "properties": { "error": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/login": {
      "post": {
        "summary": "Admin login",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token and expiresIn (seconds)" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/logout": {
      "post": { "summary": "Revoke the presented token", "security": [{"bearer": []}], "responses": { "200": { "description": "logged out" }, "401": { "description": "missing token" }, "403": { "description": "invalid token" } } }
    },
    "/api/upload": {
      "post": {
        "summary": "Upload an image",
        "security": [{"bearer": []}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"image":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "public url" }, "400": { "description": "no file" } }
      }
    },
    "/api/posts": {
      "get": { "summary": "List posts", "responses": { "200": { "description": "all posts" } } },
      "post": {
        "summary": "Create a post",
        "security": [{"bearer": []}],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/PostInput"} }, "multipart/form-data": { "schema": {"$ref":"#/components/schemas/PostInput"} } } },
        "responses": { "201": { "description": "id and slug" }, "400": { "description": "missing field" } }
      }
    },
    "/api/post/{identifier}": {
      "get": {
        "summary": "Get a post by id or slug",
        "parameters": [{"name":"identifier","in":"path","required":true,"schema":{"type":"string"}}],
        "responses": { "200": { "description": "post", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Post"} } } }, "404": { "description": "not found" } }
      }
    },
    "/api/posts/{id}": {
      "put": {
        "summary": "Update a post",
        "security": [{"bearer": []}],
        "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"integer"}}],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/PostInput"} }, "multipart/form-data": { "schema": {"$ref":"#/components/schemas/PostInput"} } } },
        "responses": { "200": { "description": "updated post" }, "400": { "description": "bad id or body" }, "404": { "description": "not found" } }
      },
      "delete": {
        "summary": "Delete a post",
        "security": [{"bearer": []}],
        "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"integer"}}],
        "responses": { "200": { "description": "removed post" }, "404": { "description": "not found" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
