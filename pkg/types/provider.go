package types

// ProviderType represents the type of image provider
type ProviderType string

// Built-in providers. The set is closed and alphabetically maintained.
const (
	ProviderTypeAWSAmplify        ProviderType = "awsAmplify"
	ProviderTypeBunny             ProviderType = "bunny"
	ProviderTypeCloudflare        ProviderType = "cloudflare"
	ProviderTypeCloudimage        ProviderType = "cloudimage"
	ProviderTypeCloudinary        ProviderType = "cloudinary"
	ProviderTypeContentful        ProviderType = "contentful"
	ProviderTypeDirectus          ProviderType = "directus"
	ProviderTypeFastly            ProviderType = "fastly"
	ProviderTypeGlide             ProviderType = "glide"
	ProviderTypeImageEngine       ProviderType = "imageengine"
	ProviderTypeImageKit          ProviderType = "imagekit"
	ProviderTypeImgix             ProviderType = "imgix"
	ProviderTypeIPX               ProviderType = "ipx"
	ProviderTypeIPXStatic         ProviderType = "ipxStatic"
	ProviderTypeNetlify           ProviderType = "netlify"
	ProviderTypeNetlifyImageCDN   ProviderType = "netlifyImageCdn"
	ProviderTypeNetlifyLargeMedia ProviderType = "netlifyLargeMedia"
	ProviderTypeNone              ProviderType = "none"
	ProviderTypePrismic           ProviderType = "prismic"
	ProviderTypeSanity            ProviderType = "sanity"
	ProviderTypeStoryblok         ProviderType = "storyblok"
	ProviderTypeStrapi            ProviderType = "strapi"
	ProviderTypeTwicpics          ProviderType = "twicpics"
	ProviderTypeUnsplash          ProviderType = "unsplash"
	ProviderTypeUploadcare        ProviderType = "uploadcare"
	ProviderTypeVercel            ProviderType = "vercel"
	ProviderTypeWeserv            ProviderType = "weserv"
)

// knownProviders mirrors the constant block above and is the single source
// of truth for registry membership and ordering.
var knownProviders = []ProviderType{
	ProviderTypeAWSAmplify,
	ProviderTypeBunny,
	ProviderTypeCloudflare,
	ProviderTypeCloudimage,
	ProviderTypeCloudinary,
	ProviderTypeContentful,
	ProviderTypeDirectus,
	ProviderTypeFastly,
	ProviderTypeGlide,
	ProviderTypeImageEngine,
	ProviderTypeImageKit,
	ProviderTypeImgix,
	ProviderTypeIPX,
	ProviderTypeIPXStatic,
	ProviderTypeNetlify,
	ProviderTypeNetlifyImageCDN,
	ProviderTypeNetlifyLargeMedia,
	ProviderTypeNone,
	ProviderTypePrismic,
	ProviderTypeSanity,
	ProviderTypeStoryblok,
	ProviderTypeStrapi,
	ProviderTypeTwicpics,
	ProviderTypeUnsplash,
	ProviderTypeUploadcare,
	ProviderTypeVercel,
	ProviderTypeWeserv,
}

var knownProviderSet = func() map[ProviderType]struct{} {
	set := make(map[ProviderType]struct{}, len(knownProviders))
	for _, p := range knownProviders {
		set[p] = struct{}{}
	}
	return set
}()

// KnownProviders returns the built-in provider registry in alphabetical order.
func KnownProviders() []ProviderType {
	out := make([]ProviderType, len(knownProviders))
	copy(out, knownProviders)
	return out
}

// IsKnownProvider reports whether name is a built-in provider.
func IsKnownProvider(name string) bool {
	_, ok := knownProviderSet[ProviderType(name)]
	return ok
}

// ProviderDescriptor is the fully resolved form of one provider slot.
// Descriptors are constructed fresh for each configuration pass and are
// read-only for consumers.
type ProviderDescriptor struct {
	// Name is the slot key identifying this provider instance
	Name string `json:"name"`

	// Provider is the resolved module location backing the slot
	Provider string `json:"provider"`

	// Runtime is the normalized path of the provider runtime
	Runtime string `json:"runtime"`

	// ImportName is the synthesized identifier used by the code-generation
	// step for the generated import binding
	ImportName string `json:"importName"`

	// RuntimeOptions carries the user's provider options unchanged
	RuntimeOptions map[string]interface{} `json:"runtimeOptions,omitempty"`

	// Setup, when non-nil, is invoked by the caller to merge
	// provider-specific deployment settings into the host configuration
	Setup SetupHook `json:"-"`
}
