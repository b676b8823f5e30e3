// Package resolver implements build-time provider resolution for the image
// optimization module. It turns user options into an ordered list of fully
// resolved provider descriptors consumed by the code-generation step.
package resolver

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cecil-the-coder/image-provider-kit/pkg/modpath"
	"github.com/cecil-the-coder/image-provider-kit/pkg/platform"
	"github.com/cecil-the-coder/image-provider-kit/pkg/types"
	"github.com/cecil-the-coder/image-provider-kit/pkg/utils"
)

// ProviderEnvVar forces the provider choice outright, regardless of user
// options. Checked first by DetectProvider.
const ProviderEnvVar = "IMAGE_PROVIDER"

// providersKey is the options key holding explicit user-named provider slots.
const providersKey = "providers"

// autoProvider is the sentinel users pass to request platform autodetection.
const autoProvider = "auto"

// AliasFunc resolves an ambiguous provider name to a concrete one. It runs
// at resolution time and is never cached, so each call may observe fresh
// environment state.
type AliasFunc func() string

// Resolver resolves provider slots against the built-in registry, the alias
// table, the setup hook registry, and the platform autodetection table.
// A zero-value Resolver is not usable; construct one with NewResolver.
type Resolver struct {
	paths    *modpath.Resolver
	detector *platform.Detector
	logger   *log.Logger

	mutex    sync.RWMutex
	aliases  map[string]AliasFunc
	setups   map[string]types.SetupHook
	defaults map[platform.Platform]string
}

// NewResolver creates a resolver with the default alias, setup hook, and
// platform autodetection tables installed.
func NewResolver(paths *modpath.Resolver) *Resolver {
	r := &Resolver{
		paths:    paths,
		detector: platform.NewDetector(),
		logger:   log.Default(),
		aliases:  make(map[string]AliasFunc),
		setups:   make(map[string]types.SetupHook),
		defaults: make(map[platform.Platform]string),
	}
	registerDefaultAliases(r)
	registerDefaultSetupHooks(r)
	registerDefaultPlatforms(r)
	return r
}

// SetLogger sets the logger used for resolution pass reporting.
func (r *Resolver) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// SetPlatformDetector replaces the platform detector, mainly for tests.
func (r *Resolver) SetPlatformDetector(detector *platform.Detector) {
	r.detector = detector
}

// RegisterAlias registers a resolver function for an ambiguous provider
// name. Registering a name twice replaces the earlier entry.
func (r *Resolver) RegisterAlias(name string, fn AliasFunc) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.aliases[name] = fn
}

// RegisterSetupHook registers a setup hook for a provider name.
func (r *Resolver) RegisterSetupHook(name string, hook types.SetupHook) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.setups[name] = hook
}

// RegisterPlatformDefault maps a detected hosting platform to the provider
// used by default on that platform.
func (r *Resolver) RegisterPlatformDefault(p platform.Platform, provider string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.defaults[p] = provider
}

// ResolveAll resolves every provider slot in the module options.
//
// Top-level option keys matching the built-in registry are implicit slots:
// the key is both the slot name and the provider selector, and its value is
// the provider's options. Entries under the "providers" key are explicit
// slots of arbitrary shape. Implicit slots always precede explicit ones;
// within each group keys are resolved in sorted order so repeated passes
// over the same options produce the same list. The two groups are
// concatenated without deduplication.
func (r *Resolver) ResolveAll(ctx context.Context, options map[string]interface{}) ([]types.ProviderDescriptor, error) {
	passID := uuid.New().String()

	var implicit []string
	for key := range options {
		if types.IsKnownProvider(key) {
			implicit = append(implicit, key)
		}
	}
	sort.Strings(implicit)

	descriptors := make([]types.ProviderDescriptor, 0, len(implicit))
	for _, key := range implicit {
		input := types.ProviderInput{Name: key, Options: utils.GetMap(options, key)}
		desc, err := r.ResolveOne(ctx, key, input)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, desc)
	}

	explicit := utils.GetMap(options, providersKey)
	keys := make([]string, 0, len(explicit))
	for key := range explicit {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		desc, err := r.ResolveOne(ctx, key, explicit[key])
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, desc)
	}

	r.logger.Printf("[%s] resolved %d image provider slot(s)", passID, len(descriptors))
	return descriptors, nil
}

// ResolveOne resolves a single provider slot. The input is either a bare
// provider-name string or a structured record; missing fields are defaulted
// from the slot key, never treated as errors.
func (r *Resolver) ResolveOne(ctx context.Context, key string, input interface{}) (types.ProviderDescriptor, error) {
	in, err := types.ParseProviderInput(input)
	if err != nil {
		return types.ProviderDescriptor{}, fmt.Errorf("provider slot %q: %w", key, err)
	}
	if in.Name == "" {
		in.Name = key
	}
	if in.Provider == "" {
		in.Provider = in.Name
	}

	// The identifier hash is taken before alias normalization so it stays
	// stable across environments where the alias resolves differently.
	rawProvider := in.Provider

	r.mutex.RLock()
	alias := r.aliases[in.Provider]
	r.mutex.RUnlock()
	if alias != nil {
		in.Provider = alias()
	}

	setup := in.Setup
	if setup == nil {
		r.mutex.RLock()
		if hook, ok := r.setups[in.Provider]; ok {
			setup = hook
		} else if hook, ok := r.setups[in.Name]; ok {
			setup = hook
		}
		r.mutex.RUnlock()
	}

	resolved, err := r.paths.Resolve(ctx, in.Provider)
	if err != nil {
		return types.ProviderDescriptor{}, err
	}

	return types.ProviderDescriptor{
		Name:           in.Name,
		Provider:       resolved,
		Runtime:        resolved,
		ImportName:     fmt.Sprintf("%sRuntime$%s", key, utils.ShortHash(rawProvider)),
		RuntimeOptions: in.Options,
		Setup:          setup,
	}, nil
}

// DetectProvider picks the provider for a build. Precedence, highest first:
// the IMAGE_PROVIDER environment override, the user's explicit choice
// (unless it is "auto"), then the autodetection table for the detected
// hosting platform. Returns "" when nothing applies; the caller supplies
// its own default.
func (r *Resolver) DetectProvider(userInput string) string {
	if v := os.Getenv(ProviderEnvVar); v != "" {
		return v
	}
	if userInput != "" && userInput != autoProvider {
		return userInput
	}
	p := r.detector.CurrentPlatform()
	if p == "" {
		return ""
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.defaults[p]
}
