package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document - корневой объект файла с данными. Записи лежат в "canchas";
// GeoJSON-вариант с "features" тоже принимается.
type Document struct {
	Fields   []RawField `json:"canchas" yaml:"canchas" validate:"dive"`
	Features []RawField `json:"features,omitempty" yaml:"features,omitempty" validate:"dive"`
}

// Records возвращает записи документа независимо от варианта
func (d Document) Records() []RawField {
	if len(d.Fields) == 0 {
		return d.Features
	}
	return d.Fields
}

// RawField - запись в формате источника: feature с properties и geometry
type RawField struct {
	Properties RawProperties `json:"properties" yaml:"properties"`
	Geometry   RawGeometry   `json:"geometry" yaml:"geometry"`
}

type RawProperties struct {
	ParkID      FlexibleID      `json:"PARK_ID" yaml:"PARK_ID" validate:"required"`
	Name        string          `json:"NAME" yaml:"NAME" validate:"required"`
	Description []string        `json:"DESCRIPTION" yaml:"DESCRIPTION"`
	Images      []string        `json:"IMAGES" yaml:"IMAGES" validate:"dive,required"`
	Clubs       []string        `json:"CLUBES" yaml:"CLUBES"`
	Coverage    []CoverageRow   `json:"COBERTURA" yaml:"COBERTURA" validate:"dive"`
	Instructors []RawInstructor `json:"INSTRUCTORES" yaml:"INSTRUCTORES" validate:"dive"`
}

// RawGeometry - контуры в порядке [lat, lng], внешний контур первым
type RawGeometry struct {
	Type        string        `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,eq=Polygon"`
	Coordinates [][][]float64 `json:"coordinates" yaml:"coordinates" validate:"required,min=1,dive,min=3,dive,len=2"`
}

type RawInstructor struct {
	Name         string `json:"NOMBRE" yaml:"NOMBRE" validate:"required"`
	Role         string `json:"ROL" yaml:"ROL"`
	Status       string `json:"ESTADO" yaml:"ESTADO"`
	Availability string `json:"DISPONIBILIDAD" yaml:"DISPONIBILIDAD"`
	Presence     string `json:"PRESENCIA" yaml:"PRESENCIA" validate:"omitempty,oneof=none online away busy dnd offline"`
	ImageURL     string `json:"IMAGEN" yaml:"IMAGEN"`
	Initials     string `json:"INICIALES" yaml:"INICIALES"`
}

// FlexibleID принимает id как строкой, так и числом
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("PARK_ID must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id *FlexibleID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("PARK_ID must be a scalar at line %d", node.Line)
	}
	*id = FlexibleID(strings.TrimSpace(node.Value))
	return nil
}

// CoverageRow - строка таблицы охвата: ["0-10", 5]
type CoverageRow struct {
	AgeBracket string `validate:"required"`
	Count      int    `validate:"gte=0"`
}

func (r *CoverageRow) UnmarshalJSON(data []byte) error {
	var cells []json.RawMessage
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("COBERTURA row must be an array: %w", err)
	}
	if len(cells) != 2 {
		return fmt.Errorf("COBERTURA row must have 2 cells, got %d", len(cells))
	}

	var bracket FlexibleID
	if err := bracket.UnmarshalJSON(cells[0]); err != nil {
		return fmt.Errorf("COBERTURA age bracket: %w", err)
	}

	count, err := parseCount(strings.Trim(string(cells[1]), `" `))
	if err != nil {
		return err
	}

	r.AgeBracket = string(bracket)
	r.Count = count
	return nil
}

func (r *CoverageRow) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("COBERTURA row must be a 2-item sequence at line %d", node.Line)
	}

	count, err := parseCount(node.Content[1].Value)
	if err != nil {
		return err
	}

	r.AgeBracket = strings.TrimSpace(node.Content[0].Value)
	r.Count = count
	return nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("COBERTURA count %q is not an integer", s)
	}
	return n, nil
}
