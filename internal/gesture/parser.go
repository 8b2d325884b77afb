/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"graphio/internal/editor"
	"graphio/internal/vector"
)

// ErrInvalidScript wraps every problem found while loading a script.
var ErrInvalidScript = errors.New("invalid gesture script")

//go:embed script.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Schema returns the JSON schema scripts are validated against.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML script, validates it against the schema and checks
// tool names and colors. Every returned error wraps ErrInvalidScript.
func Parse(data []byte) (*Script, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
	}

	var generic any
	if err := root.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := validateSchema(generic); err != nil {
		return nil, err
	}

	var s Script
	if err := root.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	for i, line := range stepLines(&root) {
		if i < len(s.Steps) {
			s.Steps[i].Line = line
		}
	}
	if errs := check(&s); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(msgs, "; "))
	}
	return &s, nil
}

func validateSchema(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile script schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(msgs, "; "))
}

// stepLines returns the source line of every item in the steps sequence.
func stepLines(root *yaml.Node) []int {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "steps" {
			continue
		}
		seq := doc.Content[i+1]
		lines := make([]int, len(seq.Content))
		for j, item := range seq.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}

// check catches what the schema cannot express: the editor's own parsing of
// tool names and colors.
func check(s *Script) []Error {
	var errs []Error
	if st := s.Settings; st != nil {
		if st.Tool != "" {
			if _, err := editor.ParseTool(st.Tool); err != nil {
				errs = append(errs, Error{Message: "settings: " + err.Error()})
			}
		}
		if st.Color != "" {
			if _, err := vector.ParseHex(st.Color); err != nil {
				errs = append(errs, Error{Message: "settings: " + err.Error()})
			}
		}
	}
	for i, step := range s.Steps {
		at := func(msg string) Error { return Error{Step: i + 1, Line: step.Line, Message: msg} }
		switch step.Op() {
		case OpNone:
			errs = append(errs, at("step has no action"))
		case OpTool:
			if _, err := editor.ParseTool(step.Tool); err != nil {
				errs = append(errs, at(err.Error()))
			}
		case OpColor:
			if _, err := vector.ParseHex(step.Color); err != nil {
				errs = append(errs, at(err.Error()))
			}
		}
	}
	return errs
}
