package tasksrepobridge

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

const schemaRef = "#/components/schemas/"

// OpenAPI describes the task routes as OpenAPI 3.1 path items together with
// the component schemas they reference. Request bodies reuse the schemas
// the handlers validate against.
func OpenAPI() (paths map[string]any, schemas map[string]any, err error) {
	schemas = map[string]any{
		"Task": map[string]any{
			"type":     "object",
			"required": []string{"id", "title", "description", "done"},
			"properties": map[string]any{
				"id":          map[string]any{"type": "integer", "format": "int64"},
				"title":       map[string]any{"type": "string"},
				"description": map[string]any{"type": []string{"string", "null"}},
				"done":        map[string]any{"type": "boolean"},
			},
		},
		"ValidationError": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"code":    map[string]any{"type": "string"},
				"message": map[string]any{"type": "string"},
				"fields": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"field": map[string]any{"type": "string"},
							"error": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}

	for name, doc := range map[string]string{
		"TaskCreate": createTaskSchemaDoc,
		"TaskUpdate": updateTaskSchemaDoc,
	} {
		defs, cerr := componentSchema(schemas, name, doc)
		if cerr != nil {
			return nil, nil, cerr
		}
		maps.Copy(schemas, defs)
	}

	paths = map[string]any{
		"/tasks/": map[string]any{
			"get": map[string]any{
				"summary":     "Listar todas as tarefas",
				"operationId": "listTasks",
				"parameters": []any{
					queryParam("skip", 0),
					queryParam("limit", 100),
				},
				"responses": map[string]any{
					"200": jsonResponse("Lista de tarefas", map[string]any{
						"type":  "array",
						"items": ref("Task"),
					}),
					"422": jsonResponse("Erro de validação", ref("ValidationError")),
				},
			},
			"post": map[string]any{
				"summary":     "Criar uma nova tarefa",
				"operationId": "createTask",
				"requestBody": jsonBody(ref("TaskCreate")),
				"responses": map[string]any{
					"201": jsonResponse("Tarefa criada", ref("Task")),
					"422": jsonResponse("Erro de validação", ref("ValidationError")),
				},
			},
		},
		"/tasks/{task_id}": map[string]any{
			"parameters": []any{
				map[string]any{
					"name":     "task_id",
					"in":       "path",
					"required": true,
					"schema":   map[string]any{"type": "integer", "format": "int64"},
				},
			},
			"get": map[string]any{
				"summary":     "Obter uma tarefa específica",
				"operationId": "getTask",
				"responses": map[string]any{
					"200": jsonResponse("Tarefa", ref("Task")),
					"404": jsonResponse("Tarefa não encontrada", ref("ValidationError")),
					"422": jsonResponse("Erro de validação", ref("ValidationError")),
				},
			},
			"put": map[string]any{
				"summary":     "Atualizar uma tarefa",
				"operationId": "updateTask",
				"requestBody": jsonBody(ref("TaskUpdate")),
				"responses": map[string]any{
					"200": jsonResponse("Tarefa atualizada", ref("Task")),
					"404": jsonResponse("Tarefa não encontrada", ref("ValidationError")),
					"422": jsonResponse("Erro de validação", ref("ValidationError")),
				},
			},
			"delete": map[string]any{
				"summary":     "Excluir uma tarefa",
				"operationId": "deleteTask",
				"responses": map[string]any{
					"204": map[string]any{"description": "Tarefa excluída"},
					"404": jsonResponse("Tarefa não encontrada", ref("ValidationError")),
					"422": jsonResponse("Erro de validação", ref("ValidationError")),
				},
			},
		},
	}

	return paths, schemas, nil
}

// componentSchema adds the embedded schema doc under name. Its local $defs
// are returned as separate components and the refs pointing at them are
// rewritten to match.
func componentSchema(schemas map[string]any, name, doc string) (map[string]any, error) {
	var raw struct {
		Defs map[string]json.RawMessage `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}

	var pairs []string
	for def := range raw.Defs {
		pairs = append(pairs, `"#/$defs/`+def+`"`, `"`+schemaRef+defName(def)+`"`)
	}
	doc = strings.NewReplacer(pairs...).Replace(doc)

	var s map[string]any
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}

	defs := make(map[string]any, len(raw.Defs))
	if d, ok := s["$defs"].(map[string]any); ok {
		for def, v := range d {
			defs[defName(def)] = v
		}
	}
	delete(s, "$defs")
	delete(s, "$schema")
	schemas[name] = s

	return defs, nil
}

// defName turns a $defs key such as laxBool into a component name LaxBool.
func defName(def string) string {
	if def == "" {
		return def
	}
	return strings.ToUpper(def[:1]) + def[1:]
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": schemaRef + name}
}

func queryParam(name string, def int) map[string]any {
	return map[string]any{
		"name":     name,
		"in":       "query",
		"required": false,
		"schema":   map[string]any{"type": "integer", "minimum": 0, "default": def},
	}
}

func jsonBody(schema map[string]any) map[string]any {
	return map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}
