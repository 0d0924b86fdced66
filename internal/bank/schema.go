package bank

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schemas/bank.cue
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	bankSchema cue.Value
	schemaErr  error
)

func loadSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		content, err := schemaFS.ReadFile("schemas/bank.cue")
		if err != nil {
			schemaErr = fmt.Errorf("reading embedded bank schema: %w", err)
			return
		}
		ctx := cuecontext.New()
		inst := ctx.CompileBytes(content, cue.Filename("bank.cue"))
		if err := inst.Err(); err != nil {
			schemaErr = fmt.Errorf("compiling bank schema: %w", err)
			return
		}
		bankSchema = inst.LookupPath(cue.ParsePath("#Bank"))
		if err := bankSchema.Err(); err != nil {
			schemaErr = fmt.Errorf("resolving #Bank definition: %w", err)
		}
	})
	return bankSchema, schemaErr
}

// ValidateSchema checks raw JSON import data against the embedded CUE
// bank schema. Structural problems are reported with CUE's path-aware
// messages before any Go-side decoding happens. The JSON is extracted
// with CUE's own decoder so integer fields keep their int type and
// unify with the schema's int constraints.
func ValidateSchema(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	expr, err := cuejson.Extract("bank.json", data)
	if err != nil {
		return fmt.Errorf("parsing question bank: %w", err)
	}
	value := schema.Context().BuildExpr(expr)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding question bank for validation: %w", err)
	}

	merged := schema.Unify(value)
	if err := merged.Validate(cue.Concrete(true)); err != nil {
		var msgs []string
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return &ImportError{-1, "schema", strings.Join(msgs, "; ")}
	}
	return nil
}
