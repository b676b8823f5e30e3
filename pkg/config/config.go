// Package config loads and merges image module options. Options are kept as
// nested maps end to end: the resolver and the setup hooks read the keys
// they understand and pass everything else through untouched.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Delim separates nested keys in flattened form (env overrides).
const Delim = "."

// Load reads a YAML module options file into a nested options map.
func Load(path string) (map[string]interface{}, error) {
	k := koanf.New(Delim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading module options from %s: %w", path, err)
	}
	return k.Raw(), nil
}

// LoadWithEnv reads a YAML module options file and overlays environment
// variables carrying the given prefix. Variable names are lowercased with
// underscores mapped to nesting, so IMAGE_IPX_MAXAGE overrides ipx.maxage
// under the "IMAGE_" prefix. Either path or envPrefix may be empty.
func LoadWithEnv(path, envPrefix string) (map[string]interface{}, error) {
	k := koanf.New(Delim)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading module options from %s: %w", path, err)
		}
	}

	if envPrefix != "" {
		provider := env.Provider(envPrefix, Delim, func(name string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_", Delim)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("loading %s* environment overrides: %w", envPrefix, err)
		}
	}

	return k.Raw(), nil
}

// Merge deep-merges overrides into base and returns the merged map.
// Overrides win on conflict. Neither input is mutated.
func Merge(base, overrides map[string]interface{}) map[string]interface{} {
	k := koanf.New(Delim)
	// confmap loads cannot fail: there is no parser and no I/O involved.
	_ = k.Load(confmap.Provider(base, ""), nil)
	_ = k.Load(confmap.Provider(overrides, ""), nil)
	return k.Raw()
}
