package model

// Document is a flexible map representing a record fetched from the document
// store. Catalog records are partially populated in practice, so every accessor
// tolerates missing keys and wrong value types rather than failing.
// Example: doc["programName"], doc["schoolsOffered"]
type Document map[string]interface{}

// GetID returns the document identifier if it's stored under the "id" key.
func (d Document) GetID() (string, bool) {
	if id, ok := d["id"]; ok {
		if str, sok := id.(string); sok && str != "" {
			return str, true
		}
	}
	return "", false
}

// GetString returns the string value stored under key, if present.
func (d Document) GetString(key string) (string, bool) {
	if val, ok := d[key]; ok {
		if str, sok := val.(string); sok {
			return str, true
		}
	}
	return "", false
}

// GetStringSlice returns the slice of strings stored under key. JSON decoding
// yields []interface{} for arrays, so both representations are accepted.
// A missing key, a non-array value, or an array holding non-string elements
// all report false; callers degrade to empty-set semantics.
func (d Document) GetStringSlice(key string) ([]string, bool) {
	val, ok := d[key]
	if !ok {
		return nil, false
	}
	switch v := val.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, sok := item.(string)
			if !sok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

// GetInt returns the integer value stored under key. JSON numbers decode as
// float64, so both int and float64 representations are accepted.
func (d Document) GetInt(key string) (int, bool) {
	if val, ok := d[key]; ok {
		switch v := val.(type) {
		case int:
			return v, true
		case float64:
			return int(v), true
		}
	}
	return 0, false
}
