package resolver

import (
	"os"

	"github.com/cecil-the-coder/image-provider-kit/pkg/platform"
	"github.com/cecil-the-coder/image-provider-kit/pkg/types"
)

// NetlifyLFSEnvVar is present on Netlify builds that use the Large Media
// storage backend. Its presence decides which concrete Netlify provider the
// "netlify" alias resolves to.
const NetlifyLFSEnvVar = "NETLIFY_LFS_ORIGIN_URL"

// registerDefaultAliases installs the alias normalization table. Concrete
// provider names are never alias keys, so normalizing an already-concrete
// name is a no-op.
func registerDefaultAliases(r *Resolver) {
	r.RegisterAlias(string(types.ProviderTypeNetlify), func() string {
		if os.Getenv(NetlifyLFSEnvVar) != "" {
			return string(types.ProviderTypeNetlifyLargeMedia)
		}
		return string(types.ProviderTypeNetlifyImageCDN)
	})
}

// registerDefaultPlatforms installs the platform autodetection table.
func registerDefaultPlatforms(r *Resolver) {
	r.RegisterPlatformDefault(platform.PlatformVercel, string(types.ProviderTypeVercel))
	r.RegisterPlatformDefault(platform.PlatformNetlify, string(types.ProviderTypeNetlifyImageCDN))
	r.RegisterPlatformDefault(platform.PlatformAWSAmplify, string(types.ProviderTypeAWSAmplify))
}
