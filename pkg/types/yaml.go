package types

import "gopkg.in/yaml.v3"

// UnmarshalYAML accepts the two shapes a provider slot takes in a config
// file: a bare provider-name scalar or a structured mapping. Setup hooks
// never come from config files, so the mapping form has no setup key.
func (in *ProviderInput) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var provider string
		if err := value.Decode(&provider); err != nil {
			return err
		}
		*in = ProviderInput{Provider: provider}
		return nil
	}

	var aux struct {
		Name     string                 `yaml:"name"`
		Provider string                 `yaml:"provider"`
		Options  map[string]interface{} `yaml:"options"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*in = ProviderInput{Name: aux.Name, Provider: aux.Provider, Options: aux.Options}
	return nil
}
