package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// GenreList is an ordered list of genre names persisted in a single text
// column. New rows are written as JSON arrays; rows migrated from the old
// schema may still hold Python-literal lists like ['Jazz', 'Classical'],
// which Scan decodes as well.
type GenreList []string

func (g GenreList) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (g *GenreList) Scan(value interface{}) error {
	if value == nil {
		*g = nil
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into GenreList", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*g = nil
		return nil
	}

	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err == nil {
		*g = genres
		return nil
	}

	genres, err := decodeLegacyList(raw)
	if err != nil {
		return err
	}
	*g = genres
	return nil
}

// decodeLegacyList parses the Python str(list) encoding the previous schema
// stored: a bracketed, comma-separated sequence of single- or double-quoted
// strings with backslash escapes.
func decodeLegacyList(raw string) ([]string, error) {
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, fmt.Errorf("invalid genre list encoding: %q", raw)
	}

	body := raw[1 : len(raw)-1]
	var genres []string
	i := 0
	for i < len(body) {
		switch body[i] {
		case ' ', ',':
			i++
		case '\'', '"':
			quote := body[i]
			var sb strings.Builder
			i++
			for i < len(body) && body[i] != quote {
				if body[i] == '\\' && i+1 < len(body) {
					i++
				}
				sb.WriteByte(body[i])
				i++
			}
			if i >= len(body) {
				return nil, fmt.Errorf("unterminated string in genre list: %q", raw)
			}
			i++
			genres = append(genres, sb.String())
		default:
			return nil, fmt.Errorf("unexpected character %q in genre list: %q", body[i], raw)
		}
	}
	return genres, nil
}
