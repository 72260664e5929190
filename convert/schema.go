/*
 * schema.go, part of elview.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package convert

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

//Validate checks doc against the schema of the ElectroLens configuration format.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("convert: nil document")
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert: encoding the document: %w", err)
	}
	return validateBytes(b)
}

//ValidateFile checks the JSON document in the file name against the schema of
//the ElectroLens configuration format.
func ValidateFile(name string) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("convert: reading %s: %w", name, err)
	}
	return validateBytes(b)
}

func validateBytes(b []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("convert: compiling the schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return fmt.Errorf("convert: validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("convert: invalid document: %s", strings.Join(errs, "; "))
	}
	return nil
}
