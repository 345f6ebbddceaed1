// Package explain serves the copy for the "how is this like AI?" dialog,
// which compares the quiz to image classification.
package explain

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lci-upiiz/adivina-planeta/assets"
)

type Point struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

type Dialog struct {
	Title  string  `yaml:"title" json:"title"`
	Intro  string  `yaml:"intro" json:"intro"`
	Points []Point `yaml:"points" json:"points"`
}

// Parse decodes dialog copy; a dialog needs a title and at least one point.
func Parse(data []byte) (Dialog, error) {
	var d Dialog
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Dialog{}, fmt.Errorf("explain: decode yaml: %w", err)
	}
	if d.Title == "" || len(d.Points) == 0 {
		return Dialog{}, errors.New("explain: title and points are required")
	}
	return d, nil
}

// Load parses the embedded assets/explain.yaml.
func Load() (Dialog, error) {
	data, err := assets.ExplainYAML()
	if err != nil {
		return Dialog{}, err
	}
	return Parse(data)
}
