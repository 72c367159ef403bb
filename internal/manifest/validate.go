package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// manifestSchema is the JSON Schema a rendered Manifest must satisfy before
// it's handed to the build service. It exists as a second line of defense
// behind the Go type system: the Go types fix the manifest's shape, and the
// schema adds value rules (required fields, non-empty strings) on the
// rendered manifest the runner is about to submit.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "name", "routes", "menus", "locales", "pages", "build"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "routes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["path", "pageId", "placement"],
        "properties": {
          "path": {"type": "string", "minLength": 1},
          "pageId": {"type": "string", "minLength": 1},
          "placement": {"type": "string", "enum": ["global", "workspace", "cluster"]}
        }
      }
    },
    "menus": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["placement", "pageId"],
        "properties": {
          "placement": {"type": "string"},
          "name": {"type": "string"},
          "pageId": {"type": "string", "minLength": 1}
        }
      }
    },
    "locales": {"type": "array"},
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "entryComponent", "componentsTree"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "entryComponent": {"type": "string", "minLength": 1},
          "componentsTree": {
            "type": "object",
            "required": ["meta", "context", "root"],
            "properties": {
              "meta": {
                "type": "object",
                "required": ["id", "name", "title", "path"],
                "properties": {
                  "id": {"type": "string", "minLength": 1},
                  "name": {"type": "string", "minLength": 1},
                  "title": {"type": "string"},
                  "path": {"type": "string", "minLength": 1}
                }
              },
              "context": {"type": "object"},
              "dataSources": {"type": "array"},
              "root": {
                "type": "object",
                "required": ["id", "type", "props", "meta"],
                "properties": {
                  "id": {"type": "string", "minLength": 1},
                  "type": {"type": "string", "enum": ["Iframe", "CrdTable"]},
                  "props": {"type": "object"},
                  "meta": {
                    "type": "object",
                    "required": ["title", "scope"],
                    "properties": {
                      "title": {"type": "string"},
                      "scope": {"type": "boolean"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    },
    "build": {
      "type": "object",
      "required": ["target", "moduleName", "systemjs"],
      "properties": {
        "target": {"type": "string", "minLength": 1},
        "moduleName": {"type": "string", "minLength": 1},
        "systemjs": {"type": "boolean"}
      }
    }
  }
}`

var (
	validatorOnce sync.Once
	validator     *jsonschema.Schema
	validatorErr  error
)

func compiledValidator() (*jsonschema.Schema, error) {
	validatorOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		const resource = "manifest.json"
		if err := compiler.AddResource(resource, strings.NewReader(manifestSchema)); err != nil {
			validatorErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}
		schema, err := compiler.Compile(resource)
		if err != nil {
			validatorErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}
		validator = schema
	})
	return validator, validatorErr
}

// Validate checks m against the manifest schema, returning a descriptive
// error naming every violation found.
func Validate(m *Manifest) error {
	schema, err := compiledValidator()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest for validation: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode manifest for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			msgs := extractValidationMessages(ve, "")
			if len(msgs) > 0 {
				return fmt.Errorf("manifest failed validation: %s", strings.Join(msgs, "; "))
			}
		}
		return fmt.Errorf("manifest failed validation: %w", err)
	}
	return nil
}

func extractValidationMessages(err *jsonschema.ValidationError, path string) []string {
	currentPath := path
	if err.InstanceLocation != "" {
		currentPath = err.InstanceLocation
	}

	var msgs []string
	if err.Message != "" {
		if currentPath != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", currentPath, err.Message))
		} else {
			msgs = append(msgs, err.Message)
		}
	}
	for _, cause := range err.Causes {
		msgs = append(msgs, extractValidationMessages(cause, currentPath)...)
	}
	return msgs
}
