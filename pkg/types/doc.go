// Package types defines the core types for the Image Provider Kit.
// It includes the built-in provider registry, provider slot inputs,
// resolved provider descriptors, and the setup hook contract shared
// across the resolution pipeline.
package types
