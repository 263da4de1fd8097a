// Package orcid reads a locally exported ORCID profile and flattens its XML
// records into the typed profile model.
package orcid

import (
	"fmt"
	"os"

	"github.com/clbanning/mxj/v2"
)

// ParseXML decodes one exported record into a nested map and strips the
// single top-level element. Attributes appear under "-name" keys and mixed
// element text under "#text".
func ParseXML(data []byte) (map[string]interface{}, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("expected one top-level element, found %d", len(m))
	}
	for _, root := range m {
		if inner, ok := root.(map[string]interface{}); ok {
			return inner, nil
		}
		// <root/> or <root>text</root>: nothing to extract
		return map[string]interface{}{}, nil
	}
	return nil, fmt.Errorf("empty document")
}

// LoadXML reads and parses the XML file at path.
func LoadXML(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read XML", Cause: err}
	}
	m, err := ParseXML(data)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to parse XML", Cause: err}
	}
	return m, nil
}
