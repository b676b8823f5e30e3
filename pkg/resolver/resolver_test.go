package resolver

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/image-provider-kit/internal/testutil"
	"github.com/cecil-the-coder/image-provider-kit/pkg/modpath"
	"github.com/cecil-the-coder/image-provider-kit/pkg/platform"
	"github.com/cecil-the-coder/image-provider-kit/pkg/types"
	"github.com/cecil-the-coder/image-provider-kit/pkg/utils"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	work := testutil.WriteModuleTree(t, map[string]string{
		"mods/custom.go": "package custom\n",
	})
	r := NewResolver(modpath.NewResolver("runtime", work))
	r.SetLogger(log.New(io.Discard, "", 0))
	return r
}

// TestResolveOne_BuiltinProviders verifies every registry entry resolves to
// its built-in runtime path with options passed through unchanged
func TestResolveOne_BuiltinProviders(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	for _, p := range types.KnownProviders() {
		if p == types.ProviderTypeNetlify {
			// Alias, resolved to a concrete variant; covered separately.
			continue
		}
		t.Run(string(p), func(t *testing.T) {
			opts := map[string]interface{}{"modifiers": map[string]interface{}{}}
			desc, err := r.ResolveOne(ctx, string(p), types.ProviderInput{Name: string(p), Options: opts})
			require.NoError(t, err)

			assert.Equal(t, string(p), desc.Name)
			assert.Equal(t, "runtime/providers/"+string(p), desc.Provider)
			assert.Equal(t, desc.Provider, desc.Runtime)
			assert.Equal(t, opts, desc.RuntimeOptions)
			assert.NotEmpty(t, desc.ImportName)
		})
	}
}

// TestResolveOne_Defaults tests the name and provider defaulting chain
func TestResolveOne_Defaults(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	t.Run("bare string selects builtin", func(t *testing.T) {
		desc, err := r.ResolveOne(ctx, "cms", "contentful")
		require.NoError(t, err)
		assert.Equal(t, "cms", desc.Name)
		assert.Equal(t, "runtime/providers/contentful", desc.Provider)
	})

	t.Run("name defaults to slot key", func(t *testing.T) {
		desc, err := r.ResolveOne(ctx, "imgix", nil)
		require.NoError(t, err)
		assert.Equal(t, "imgix", desc.Name)
		assert.Equal(t, "runtime/providers/imgix", desc.Provider)
	})

	t.Run("provider defaults to name", func(t *testing.T) {
		desc, err := r.ResolveOne(ctx, "slot", types.ProviderInput{Name: "fastly"})
		require.NoError(t, err)
		assert.Equal(t, "fastly", desc.Name)
		assert.Equal(t, "runtime/providers/fastly", desc.Provider)
	})

	t.Run("external specifier", func(t *testing.T) {
		desc, err := r.ResolveOne(ctx, "art", "mods/custom")
		require.NoError(t, err)
		assert.Equal(t, "art", desc.Name)
		assert.Contains(t, desc.Provider, "mods/custom.go")
	})
}

// TestResolveOne_ModuleNotFound tests propagation of unresolvable specifiers
func TestResolveOne_ModuleNotFound(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.ResolveOne(context.Background(), "broken", "mods/missing")
	require.Error(t, err)

	var notFound *modpath.ModuleNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "mods/missing")
}

// TestResolveOne_NetlifyAlias tests environment-driven alias normalization
func TestResolveOne_NetlifyAlias(t *testing.T) {
	ctx := context.Background()

	t.Run("large media backend", func(t *testing.T) {
		t.Setenv(NetlifyLFSEnvVar, "https://lfs.example.com")
		r := newTestResolver(t)

		desc, err := r.ResolveOne(ctx, "netlify", map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, "runtime/providers/netlifyLargeMedia", desc.Provider)
	})

	t.Run("image cdn backend", func(t *testing.T) {
		t.Setenv(NetlifyLFSEnvVar, "")
		r := newTestResolver(t)

		desc, err := r.ResolveOne(ctx, "netlify", map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, "runtime/providers/netlifyImageCdn", desc.Provider)
	})

	t.Run("import name ignores normalization", func(t *testing.T) {
		expected := "netlifyRuntime$" + utils.ShortHash("netlify")

		t.Setenv(NetlifyLFSEnvVar, "https://lfs.example.com")
		r := newTestResolver(t)
		withLFS, err := r.ResolveOne(ctx, "netlify", nil)
		require.NoError(t, err)

		t.Setenv(NetlifyLFSEnvVar, "")
		withoutLFS, err := r.ResolveOne(ctx, "netlify", nil)
		require.NoError(t, err)

		assert.Equal(t, expected, withLFS.ImportName)
		assert.Equal(t, expected, withoutLFS.ImportName)
	})
}

// TestResolveOne_ImportName tests the generated import identifier
func TestResolveOne_ImportName(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	first, err := r.ResolveOne(ctx, "cdn", "imgix")
	require.NoError(t, err)
	second, err := r.ResolveOne(ctx, "cdn", "imgix")
	require.NoError(t, err)

	// Pure function of (key, provider): repeated calls agree.
	assert.Equal(t, first.ImportName, second.ImportName)
	assert.Equal(t, "cdnRuntime$"+utils.ShortHash("imgix"), first.ImportName)

	other, err := r.ResolveOne(ctx, "cdn", "fastly")
	require.NoError(t, err)
	assert.NotEqual(t, first.ImportName, other.ImportName)
}

// TestResolveOne_SetupHookPrecedence tests hook selection: explicit input
// hook, then provider name, then slot name
func TestResolveOne_SetupHookPrecedence(t *testing.T) {
	ctx := context.Background()

	runHook := func(t *testing.T, hook types.SetupHook) string {
		t.Helper()
		require.NotNil(t, hook)
		sc := &types.SetupContext{HostConfig: map[string]interface{}{}}
		require.NoError(t, hook(nil, sc))
		return utils.GetString(sc.HostConfig, "calledBy")
	}

	marker := func(name string) types.SetupHook {
		return func(providerOptions map[string]interface{}, sc *types.SetupContext) error {
			sc.HostConfig["calledBy"] = name
			return nil
		}
	}

	t.Run("explicit input hook wins", func(t *testing.T) {
		r := newTestResolver(t)
		r.RegisterSetupHook("imgix", marker("registry"))

		desc, err := r.ResolveOne(ctx, "imgix", types.ProviderInput{Setup: marker("input")})
		require.NoError(t, err)
		assert.Equal(t, "input", runHook(t, desc.Setup))
	})

	t.Run("provider hook before name hook", func(t *testing.T) {
		r := newTestResolver(t)
		r.RegisterSetupHook("imgix", marker("provider"))
		r.RegisterSetupHook("gallery", marker("name"))

		desc, err := r.ResolveOne(ctx, "gallery", types.ProviderInput{Provider: "imgix"})
		require.NoError(t, err)
		assert.Equal(t, "provider", runHook(t, desc.Setup))
	})

	t.Run("name hook as fallback", func(t *testing.T) {
		r := newTestResolver(t)
		r.RegisterSetupHook("gallery", marker("name"))

		desc, err := r.ResolveOne(ctx, "gallery", types.ProviderInput{Provider: "imgix"})
		require.NoError(t, err)
		assert.Equal(t, "name", runHook(t, desc.Setup))
	})

	t.Run("no hook", func(t *testing.T) {
		r := newTestResolver(t)

		desc, err := r.ResolveOne(ctx, "cdn", "imgix")
		require.NoError(t, err)
		assert.Nil(t, desc.Setup)
	})
}

// TestResolveAll_Order verifies implicit slots precede explicit ones with
// each group in sorted key order
func TestResolveAll_Order(t *testing.T) {
	r := newTestResolver(t)

	descriptors, err := r.ResolveAll(context.Background(), map[string]interface{}{
		"vercel":     map[string]interface{}{"modifiers": map[string]interface{}{}},
		"cloudinary": map[string]interface{}{},
		"screens":    map[string]interface{}{"sm": 640},
		"providers": map[string]interface{}{
			"cms": "contentful",
			"art": "mods/custom",
		},
	})
	require.NoError(t, err)
	require.Len(t, descriptors, 4)

	// Implicit group first (sorted), then the explicit providers map (sorted).
	assert.Equal(t, "cloudinary", descriptors[0].Name)
	assert.Equal(t, "vercel", descriptors[1].Name)
	assert.Equal(t, "art", descriptors[2].Name)
	assert.Equal(t, "cms", descriptors[3].Name)

	// A providers-map entry naming a built-in resolves as a built-in.
	assert.Equal(t, "runtime/providers/contentful", descriptors[3].Provider)
	assert.Contains(t, descriptors[2].Provider, "mods/custom.go")
}

// TestResolveAll_ImplicitSlotShape verifies the implicit slot carries the
// top-level key's value as its options
func TestResolveAll_ImplicitSlotShape(t *testing.T) {
	r := newTestResolver(t)
	opts := map[string]interface{}{"modifiers": map[string]interface{}{"quality": 80}}

	descriptors, err := r.ResolveAll(context.Background(), map[string]interface{}{
		"vercel": opts,
	})
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	assert.Equal(t, "vercel", descriptors[0].Name)
	assert.Equal(t, "runtime/providers/vercel", descriptors[0].Provider)
	assert.Equal(t, opts, descriptors[0].RuntimeOptions)
	assert.NotNil(t, descriptors[0].Setup)
}

// TestResolveAll_Empty tests resolution of options with no provider slots
func TestResolveAll_Empty(t *testing.T) {
	r := newTestResolver(t)

	descriptors, err := r.ResolveAll(context.Background(), map[string]interface{}{
		"provider": "auto",
		"screens":  map[string]interface{}{"sm": 640},
	})
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

// TestResolveAll_InvalidSlot tests error propagation with slot context
func TestResolveAll_InvalidSlot(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.ResolveAll(context.Background(), map[string]interface{}{
		"providers": map[string]interface{}{"bad": 42},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `provider slot "bad"`)
}

// TestDetectProvider tests the detection precedence chain
func TestDetectProvider(t *testing.T) {
	vercelEnv := platform.NewDetectorWithLookup(func(key string) (string, bool) {
		if key == "VERCEL" {
			return "1", true
		}
		return "", false
	})
	noPlatform := platform.NewDetectorWithLookup(func(string) (string, bool) {
		return "", false
	})

	t.Run("environment override wins", func(t *testing.T) {
		t.Setenv(ProviderEnvVar, "myprovider")
		r := newTestResolver(t)
		r.SetPlatformDetector(vercelEnv)

		assert.Equal(t, "myprovider", r.DetectProvider("imgix"))
	})

	t.Run("explicit user choice", func(t *testing.T) {
		t.Setenv(ProviderEnvVar, "")
		r := newTestResolver(t)
		r.SetPlatformDetector(vercelEnv)

		assert.Equal(t, "imgix", r.DetectProvider("imgix"))
	})

	t.Run("auto falls through to platform", func(t *testing.T) {
		t.Setenv(ProviderEnvVar, "")
		r := newTestResolver(t)
		r.SetPlatformDetector(vercelEnv)

		assert.Equal(t, "vercel", r.DetectProvider("auto"))
	})

	t.Run("empty input falls through to platform", func(t *testing.T) {
		t.Setenv(ProviderEnvVar, "")
		r := newTestResolver(t)
		r.SetPlatformDetector(vercelEnv)

		assert.Equal(t, "vercel", r.DetectProvider(""))
	})

	t.Run("nothing applies", func(t *testing.T) {
		t.Setenv(ProviderEnvVar, "")
		r := newTestResolver(t)
		r.SetPlatformDetector(noPlatform)

		assert.Equal(t, "", r.DetectProvider("auto"))
	})

	t.Run("custom platform default", func(t *testing.T) {
		t.Setenv(ProviderEnvVar, "")
		r := newTestResolver(t)
		r.SetPlatformDetector(vercelEnv)
		r.RegisterPlatformDefault(platform.PlatformVercel, "ipxStatic")

		assert.Equal(t, "ipxStatic", r.DetectProvider("auto"))
	})
}
