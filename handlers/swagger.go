package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
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
    <title>shayari-backend API</title>
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

// Routes are also served under the /api prefix.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "shayari-backend", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "ShayariInput": { "type": "object", "required": ["title", "content"], "properties": {
        "title": { "type": "string" }, "content": { "type": "string" },
        "moodTags": { "type": "array", "items": { "type": "string" } }, "isPublic": { "type": "boolean" } } },
      "Reaction": { "type": "object", "properties": { "emoji": { "type": "string", "enum": ["❤️", "🔥", "🥀", "👏", "👎"] } } }
    }
  },
  "paths": {
    "/auth/login": {
      "post": { "summary": "Exchange the operator credential for a bearer token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token issued" }, "401": { "description": "invalid credentials" }, "503": { "description": "login not configured" } } }
    },
    "/auth/me": { "get": { "summary": "Identity carried by the token", "security": [{"bearer": []}], "responses": { "200": { "description": "identity" }, "401": { "description": "no token" }, "403": { "description": "invalid token" } } } },
    "/shayaris": { "post": { "summary": "Create a shayari", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ShayariInput" } } } }, "responses": { "201": { "description": "created" }, "400": { "description": "title and content required" }, "401": { "description": "no token" }, "403": { "description": "invalid token" } } } },
    "/shayaris/public": { "get": { "summary": "List public shayaris, newest first", "responses": { "200": { "description": "records" } } } },
    "/shayaris/all": {
      "get": { "summary": "List every shayari", "security": [{"bearer": []}], "responses": { "200": { "description": "records" }, "401": { "description": "no token" }, "403": { "description": "invalid token" } } },
      "post": { "summary": "Create a shayari", "security": [{"bearer": []}], "responses": { "201": { "description": "created" } } }
    },
    "/shayaris/{id}": {
      "get": { "summary": "Fetch one shayari", "responses": { "200": { "description": "record" }, "403": { "description": "private" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace a shayari", "security": [{"bearer": []}], "responses": { "200": { "description": "record" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a shayari", "security": [{"bearer": []}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/shayaris/{id}/reaction": { "post": { "summary": "Add one reaction", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Reaction" } } } }, "responses": { "200": { "description": "record" }, "400": { "description": "invalid emoji" }, "403": { "description": "private" }, "404": { "description": "not found" } } } },
    "/shayaris/reaction": { "post": { "summary": "Add one reaction (id in body)", "responses": { "200": { "description": "record" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition" } } } }
  }
}`
