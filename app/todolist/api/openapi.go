package api

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"github.com/jrazmi/todolist/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/todolist/infrastructure/web"
)

// Service metadata published in the OpenAPI document.
const (
	Title       = "API de Lista de Tarefas (To-Do List)"
	Description = "Uma API simples para gerenciar tarefas usando Go e PostgreSQL."
	Version     = "1.0.0"
)

// OpenAPIPath serves the machine readable API description, DocsPath the
// browsable UI built on it.
const (
	OpenAPIPath = "/openapi.json"
	DocsPath    = "/docs"
)

// OpenAPI builds the OpenAPI 3.1 document for every public route.
func OpenAPI() (map[string]any, error) {
	taskPaths, schemas, err := tasksrepobridge.OpenAPI()
	if err != nil {
		return nil, fmt.Errorf("task routes: %w", err)
	}

	paths := map[string]any{
		"/": map[string]any{
			"get": map[string]any{
				"summary":     "Mensagem de Boas-vindas",
				"description": "Endpoint raiz que exibe uma mensagem de boas-vindas.",
				"operationId": "readRoot",
				"responses": map[string]any{
					"200": map[string]any{"description": "Mensagem de boas-vindas"},
				},
			},
		},
	}
	maps.Copy(paths, taskPaths)

	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":       Title,
			"description": Description,
			"version":     Version,
		},
		"paths":      paths,
		"components": map[string]any{"schemas": schemas},
	}, nil
}

type rawJSON []byte

func (j rawJSON) Encode() ([]byte, string, error) {
	return j, "application/json", nil
}

type htmlPage string

func (p htmlPage) Encode() ([]byte, string, error) {
	return []byte(p), "text/html; charset=utf-8", nil
}

const docsPage = `<!DOCTYPE html>
<html>
<head>
<title>` + Title + ` - Swagger UI</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: "` + OpenAPIPath + `", dom_id: "#swagger-ui"});
</script>
</body>
</html>
`

// addDocs registers the OpenAPI document and the docs UI. The document is
// rendered once.
func addDocs(wh *web.WebHandler) error {
	doc, err := OpenAPI()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding openapi: %w", err)
	}

	wh.GET(OpenAPIPath, func(ctx context.Context, r *http.Request) web.Encoder {
		return rawJSON(data)
	})
	wh.GET(DocsPath, func(ctx context.Context, r *http.Request) web.Encoder {
		return htmlPage(docsPage)
	})

	return nil
}
