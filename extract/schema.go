package extract

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/luadoc/signature"
	"go.jacobcolvin.com/luadoc/typeexpr"
)

// SchemaURI is the JSON Schema dialect of [Schema].
const SchemaURI = "http://json-schema.org/draft-07/schema#"

// Schema returns a JSON Schema (Draft 7) describing the JSON encoding of a
// []Function document.
func Schema() *jsonschema.Schema {
	str := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Description: desc}
	}

	typeRef := &jsonschema.Schema{Ref: "#/definitions/typeExpr"}

	typeExpr := &jsonschema.Schema{
		Type:        "object",
		Description: "A parsed type expression.",
		Properties: map[string]*jsonschema.Schema{
			"kind": {
				Type: "string",
				Enum: []any{
					string(typeexpr.KindNamed),
					string(typeexpr.KindArray),
					string(typeexpr.KindUnion),
					string(typeexpr.KindGeneric),
				},
			},
			"name":     str("Identifier for named and generic kinds."),
			"optional": {Type: "boolean"},
			"element":  typeRef,
			"members": {
				Type:     "array",
				Items:    typeRef,
				MinItems: jsonschema.Ptr(2),
			},
		},
		Required: []string{"kind"},
	}

	param := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":        str(""),
			"type":        typeRef,
			"description": str(""),
		},
		Required: []string{"name", "type"},
	}

	ret := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"type":        typeRef,
			"description": str(""),
		},
		Required: []string{"type"},
	}

	generic := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":       str(""),
			"constraint": typeRef,
		},
		Required: []string{"name"},
	}

	doc := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"description": str("First free-text line of the comment."),
			"params":      {Type: "array", Items: param},
			"return":      ret,
			"generics":    {Type: "array", Items: generic},
			"notes":       {Type: "array", Items: str("")},
		},
	}

	sig := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"qualifiedName": str("Dotted name, e.g. Module.sub.func."),
			"simpleName":    str("Final segment of the qualified name."),
			"rawParameters": str("Parameter list as written."),
			"visibility": {
				Type: "string",
				Enum: []any{
					string(signature.VisibilityPublic),
					string(signature.VisibilityPrivate),
					string(signature.VisibilityInternal),
				},
			},
		},
		Required: []string{"qualifiedName", "simpleName", "visibility"},
	}

	function := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path":      str("Source file path."),
			"line":      {Type: "integer", Minimum: jsonschema.Ptr(1.0)},
			"signature": sig,
			"doc":       doc,
		},
		Required: []string{"signature", "line"},
	}

	return &jsonschema.Schema{
		Schema:      SchemaURI,
		Title:       "luadoc functions",
		Description: "Functions extracted from Lua annotation comments.",
		Type:        "array",
		Items:       function,
		Definitions: map[string]*jsonschema.Schema{
			"typeExpr": typeExpr,
		},
	}
}
