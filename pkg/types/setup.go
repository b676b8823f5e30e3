package types

// SetupContext carries the shared state a setup hook may read and mutate.
// Hooks run during the host framework's module-initialization phase, after
// resolution has produced the descriptors.
type SetupContext struct {
	// ModuleOptions is the whole image module's options map
	ModuleOptions map[string]interface{}

	// HostConfig is the shared host framework configuration. Hooks replace
	// it with a merged copy rather than mutating entries in place.
	HostConfig map[string]interface{}

	// WorkDir is the caller's working directory for the build
	WorkDir string
}

// SetupHook wires provider-specific deployment settings into the host
// configuration. It receives the provider slot's own options and the shared
// setup context.
type SetupHook func(providerOptions map[string]interface{}, sc *SetupContext) error
