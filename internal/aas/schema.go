package aas

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/submodel.schema.json
var schemaFS embed.FS

var (
	submodelSchemaOnce sync.Once
	submodelSchema     *jsonschema.Schema
	submodelSchemaErr  error
)

func compiledSubmodelSchema() (*jsonschema.Schema, error) {
	submodelSchemaOnce.Do(func() {
		data, err := schemaFS.ReadFile("schema/submodel.schema.json")
		if err != nil {
			submodelSchemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("submodel.schema.json", bytes.NewReader(data)); err != nil {
			submodelSchemaErr = err
			return
		}
		submodelSchema, submodelSchemaErr = compiler.Compile("submodel.schema.json")
	})
	return submodelSchema, submodelSchemaErr
}

// ValidateDocument checks a raw submodel document against the metamodel
// schema. A nil return means the document is structurally sound; the
// error message points at the offending location when it is not.
func ValidateDocument(data []byte) error {
	schema, err := compiledSubmodelSchema()
	if err != nil {
		return fmt.Errorf("compile submodel schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse submodel document: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("submodel document invalid: %s", condenseSchemaError(err))
	}
	return nil
}

// condenseSchemaError extracts a short, single-line message from the
// validator's detailed error output.
func condenseSchemaError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if len(msg) > 120 {
		msg = msg[:117] + "..."
	}
	return msg
}
