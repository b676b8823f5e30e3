// Package modpath resolves provider identifiers to concrete module
// locations. Built-in providers resolve to paths under the embedded runtime
// directory; anything else is treated as an external module specifier and
// probed against the caller's working directory.
package modpath

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cecil-the-coder/image-provider-kit/pkg/types"
)

// ModuleNotFoundError reports an external provider specifier that could not
// be resolved. It propagates to the caller unhandled, a build-time
// configuration error is not recoverable.
type ModuleNotFoundError struct {
	Specifier string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("cannot resolve provider module %q", e.Specifier)
}

// Resolver locates provider runtime modules on the filesystem.
type Resolver struct {
	// RuntimeDir is the directory holding the built-in provider runtimes
	RuntimeDir string

	// WorkDir is the base directory for external provider specifiers
	WorkDir string
}

// NewResolver creates a path resolver rooted at the given directories.
func NewResolver(runtimeDir, workDir string) *Resolver {
	return &Resolver{
		RuntimeDir: runtimeDir,
		WorkDir:    workDir,
	}
}

// Resolve turns a provider selector into a concrete module location.
// A selector matching the built-in registry resolves as a built-in
// regardless of which input source named it; everything else is resolved
// as an external specifier.
func (r *Resolver) Resolve(ctx context.Context, provider string) (string, error) {
	if types.IsKnownProvider(provider) {
		return r.ResolveBuiltin(provider)
	}
	return r.ResolveExternal(ctx, provider)
}

// ResolveBuiltin returns the normalized runtime path for a built-in
// provider. The caller is expected to have checked registry membership.
func (r *Resolver) ResolveBuiltin(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("provider name cannot be empty")
	}
	return normalize(filepath.Join(r.RuntimeDir, "providers", name)), nil
}

// ResolveExternal resolves an external module specifier to an absolute
// path. Relative specifiers are probed against WorkDir; candidates are the
// exact path (file or package directory) and the path with a source
// extension. Returns a *ModuleNotFoundError if nothing matches.
func (r *Resolver) ResolveExternal(ctx context.Context, specifier string) (string, error) {
	if specifier == "" {
		return "", &ModuleNotFoundError{Specifier: specifier}
	}

	base := filepath.Clean(specifier)
	if !filepath.IsAbs(base) {
		base = filepath.Join(r.WorkDir, base)
	}

	for _, candidate := range []string{base, base + ".go"} {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", err
			}
			return normalize(abs), nil
		}
	}

	return "", &ModuleNotFoundError{Specifier: specifier}
}

// normalize produces the slash-separated form used in descriptors so
// generated output is identical across platforms.
func normalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
