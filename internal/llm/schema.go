package llm

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// FieldType is the JSON type of a response field.
type FieldType string

// Supported field types.
const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
)

// SchemaField defines a single field in the structured output.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// ResponseSchema is the data contract a structured request asks the model to honor.
type ResponseSchema struct {
	Name   string
	Fields []SchemaField
}

// RequiredFields returns the names of required fields in declaration order.
func (s ResponseSchema) RequiredFields() []string {
	var required []string
	for _, f := range s.Fields {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return required
}

// Instructions renders the schema as prompt text, for models that ignore
// native response schemas.
func (s ResponseSchema) Instructions() string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range s.Fields {
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, field.Type, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}

// genaiSchema converts the contract into Gemini's native response schema.
func (s ResponseSchema) genaiSchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = &genai.Schema{
			Type:        genaiType(f.Type),
			Description: f.Description,
		}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   s.RequiredFields(),
	}
}

func genaiType(t FieldType) genai.Type {
	switch t {
	case FieldNumber:
		return genai.TypeNumber
	case FieldInteger:
		return genai.TypeInteger
	case FieldBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
