package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API description endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>movie-api Swagger</title>
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
  "info": { "title": "movie-api", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Error": { "type": "object", "properties": { "detail": { "type": "string" } } },
      "Movie": {
        "type": "object",
        "properties": {
          "_id": { "type": "string" },
          "title": { "type": "string" },
          "plot": { "type": "string" },
          "fullplot": { "type": "string" },
          "genres": { "type": "array", "items": { "type": "string" } },
          "cast": { "type": "array", "items": { "type": "string" } },
          "directors": { "type": "array", "items": { "type": "string" } },
          "languages": { "type": "array", "items": { "type": "string" } },
          "countries": { "type": "array", "items": { "type": "string" } },
          "runtime": { "type": "integer" },
          "year": { "type": "integer" },
          "num_mflix_comments": { "type": "integer" },
          "poster": { "type": "string" },
          "rated": { "type": "string" },
          "type": { "type": "string" },
          "released": { "type": "string", "format": "date-time" },
          "lastUpdated": { "type": "string", "format": "date-time" },
          "awards": { "type": "object", "properties": { "wins": { "type": "integer" }, "nominations": { "type": "integer" }, "text": { "type": "string" } } },
          "imdb": { "type": "object", "properties": { "rating": { "type": "number" }, "votes": { "type": "integer" }, "id": { "type": "integer" } } },
          "tomatoes": { "type": "object" }
        }
      }
    }
  },
  "paths": {
    "/movie/": {
      "get": { "summary": "List up to 100 movies", "responses": { "200": { "description": "movies", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Movie" } } } } }, "500": { "description": "store failure" } } }
    },
    "/movie/specific": {
      "get": {
        "summary": "Find movies by exact title and/or cast member",
        "parameters": [
          { "name": "title", "in": "query", "schema": { "type": "string" } },
          { "name": "actor", "in": "query", "schema": { "type": "string" } }
        ],
        "responses": { "200": { "description": "matching movies" }, "400": { "description": "neither title nor actor given" } }
      }
    },
    "/movie/common": {
      "get": { "summary": "Count titles present in both stores", "responses": { "200": { "description": "integer count", "content": { "application/json": { "schema": { "type": "integer" } } } } } }
    },
    "/movie/{title}": {
      "put": {
        "summary": "Update one movie by title",
        "parameters": [ { "name": "title", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Movie" } } } },
        "responses": { "200": { "description": "updated" }, "400": { "description": "nothing changed or malformed body" }, "404": { "description": "no movie with that title" } }
      }
    },
    "/movie/{movie_name}/rated-users": {
      "get": {
        "summary": "Names of people who reviewed a movie",
        "parameters": [ { "name": "movie_name", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "one name per review" } }
      }
    },
    "/movie/{user_name}/ratings": {
      "get": {
        "summary": "Movies reviewed by a person",
        "parameters": [ { "name": "user_name", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "user, movies_rated and rated_movies" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
