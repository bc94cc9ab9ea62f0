package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lost-found-search/internal/contracts/schemas"
)

// Nombres de los contratos registrados.
const (
	FilterUpdate    = "FilterUpdateRequest"
	PositionReport  = "PositionReportRequest"
	CurrentLocation = "CurrentLocationRequest"
	AddressSelect   = "AddressSelectRequest"
	ScoreRequest    = "ScoreRequest"
	Version1        = "1.0.0"
)

var ErrInvalidPayload = errors.New("invalid payload")

// ValidationError se devuelve cuando el body no cumple el schema.
type ValidationError struct {
	Contract string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Contract, e.Err)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPayload }

var compiled = map[string]*jsonschema.Schema{}

func init() {
	if err := load(schemas.FS); err != nil {
		panic(err)
	}
}

func load(fsys fs.FS) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, "requests", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		f, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := compiler.AddResource(path, f); err != nil {
			return fmt.Errorf("add schema %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	for _, path := range paths {
		s, err := compiler.Compile(path)
		if err != nil {
			return fmt.Errorf("compile schema %s: %w", path, err)
		}
		key := keyFromPath(path)
		if key == "" {
			return fmt.Errorf("bad schema path %s", path)
		}
		compiled[key] = s
	}
	return nil
}

// keyFromPath: "requests/filter-update/v1.json" -> "FilterUpdateRequest/1.0.0".
// Los que ya terminan en "request" no se duplican ("score-request" -> "ScoreRequest").
func keyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "requests/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	words := strings.Split(parts[0], "-")
	for _, w := range words {
		name.WriteString(caser.String(w))
	}
	if words[len(words)-1] != "request" {
		name.WriteString("Request")
	}

	return name.String() + "/" + strings.TrimPrefix(parts[1], "v") + ".0.0"
}

// Validate valida body contra el contrato name/version.
func Validate(name, version string, body []byte) error {
	s, ok := compiled[name+"/"+version]
	if !ok {
		return fmt.Errorf("schema %s/%s not registered", name, version)
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return &ValidationError{Contract: name, Err: fmt.Errorf("body is not valid JSON: %w", err)}
	}
	if err := s.Validate(v); err != nil {
		return &ValidationError{Contract: name, Err: err}
	}
	return nil
}
