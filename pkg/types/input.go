package types

import "fmt"

// ProviderInput is the user-supplied description of one provider slot.
// All fields are optional; the resolver defaults Name from the slot key and
// Provider from Name.
type ProviderInput struct {
	// Name is the key identifying this slot
	Name string `json:"name,omitempty"`

	// Provider selects the built-in or external implementation to use
	Provider string `json:"provider,omitempty"`

	// Options holds opaque provider-specific settings, passed through to the
	// descriptor unchanged
	Options map[string]interface{} `json:"options,omitempty"`

	// Setup overrides the registered setup hook for this slot
	Setup SetupHook `json:"-"`
}

// ParseProviderInput normalizes the accepted input shapes into a
// ProviderInput. A bare string is a provider selector, leaving the slot
// name to be defaulted from the slot key; a map is the decoded form of a
// structured config entry; ProviderInput values pass through unchanged.
// Unknown option shapes inside the map are not validated here, they flow
// through opaquely to consumers.
func ParseProviderInput(input interface{}) (ProviderInput, error) {
	switch v := input.(type) {
	case nil:
		return ProviderInput{}, nil
	case string:
		return ProviderInput{Provider: v}, nil
	case ProviderInput:
		return v, nil
	case *ProviderInput:
		if v == nil {
			return ProviderInput{}, nil
		}
		return *v, nil
	case map[string]interface{}:
		return parseInputMap(v)
	default:
		return ProviderInput{}, NewValidationError(fmt.Sprintf("unsupported provider input type %T", input))
	}
}

func parseInputMap(m map[string]interface{}) (ProviderInput, error) {
	var in ProviderInput

	if raw, ok := m["name"]; ok {
		s, ok := raw.(string)
		if !ok {
			return ProviderInput{}, NewValidationError(fmt.Sprintf("provider name must be a string, got %T", raw))
		}
		in.Name = s
	}
	if raw, ok := m["provider"]; ok {
		s, ok := raw.(string)
		if !ok {
			return ProviderInput{}, NewValidationError(fmt.Sprintf("provider selector must be a string, got %T", raw))
		}
		in.Provider = s
	}
	if raw, ok := m["options"]; ok {
		if opts, ok := raw.(map[string]interface{}); ok {
			in.Options = opts
		}
	}
	// Setup hooks only arrive programmatically, never from decoded config.
	if raw, ok := m["setup"]; ok {
		if hook, ok := raw.(SetupHook); ok {
			in.Setup = hook
		}
	}

	return in, nil
}

// ValidationError represents a malformed provider input
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
