package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Section struct {
	Name    string
	Content string
}

// Sections is an insertion-ordered mapping from section name to body.
// It marshals as a JSON object whose keys keep document order.
type Sections []Section

// Set stores content under name. An existing key keeps its position.
func (s *Sections) Set(name, content string) {
	for i := range *s {
		if (*s)[i].Name == name {
			(*s)[i].Content = content
			return
		}
	}
	*s = append(*s, Section{Name: name, Content: content})
}

func (s Sections) Get(name string) (string, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec.Content, true
		}
	}
	return "", false
}

func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for _, sec := range s {
		names = append(names, sec.Name)
	}
	return names
}

func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(sec.Content)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Sections) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected JSON object")
	}

	result := Sections{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sections: expected string key")
		}
		var content string
		if err := dec.Decode(&content); err != nil {
			return fmt.Errorf("sections: value for %q: %w", key, err)
		}
		result.Set(key, content)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = result
	return nil
}
