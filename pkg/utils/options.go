package utils

// Helper functions for option map parsing. Provider options are opaque
// maps, so setup hooks and the resolver coerce the individual fields they
// care about and ignore the rest.

// GetString returns the string at key, or "" if absent or not a string.
func GetString(options map[string]interface{}, key string) string {
	if val, ok := options[key].(string); ok {
		return val
	}
	return ""
}

// GetBool returns the bool at key, or false if absent or not a bool.
func GetBool(options map[string]interface{}, key string) bool {
	if val, ok := options[key].(bool); ok {
		return val
	}
	return false
}

// GetInt returns the int at key. YAML decoding may produce int or float64,
// both are accepted.
func GetInt(options map[string]interface{}, key string) int {
	switch val := options[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return 0
}

// GetStringSlice returns the strings at key, skipping non-string elements.
func GetStringSlice(options map[string]interface{}, key string) []string {
	if val, ok := options[key].([]string); ok {
		return val
	}
	if val, ok := options[key].([]interface{}); ok {
		var result []string
		for _, v := range val {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return nil
}

// GetMap returns the nested map at key, or nil if absent or not a map.
func GetMap(options map[string]interface{}, key string) map[string]interface{} {
	if val, ok := options[key].(map[string]interface{}); ok {
		return val
	}
	return nil
}
