package resolver

import (
	"fmt"
	"sort"

	"github.com/cecil-the-coder/image-provider-kit/pkg/config"
	"github.com/cecil-the-coder/image-provider-kit/pkg/types"
	"github.com/cecil-the-coder/image-provider-kit/pkg/utils"
)

// defaultCacheTTL is the minimum cache lifetime, in seconds, requested from
// platform image CDNs.
const defaultCacheTTL = 60

// registerDefaultSetupHooks installs the setup hook registry. Hooks run
// after resolution, when the caller invokes them during module
// initialization; each one deep-merges its platform's image settings into
// the shared host configuration.
func registerDefaultSetupHooks(r *Resolver) {
	r.RegisterSetupHook(string(types.ProviderTypeVercel), vercelSetup)
	r.RegisterSetupHook(string(types.ProviderTypeAWSAmplify), awsAmplifySetup)
	r.RegisterSetupHook(string(types.ProviderTypeNetlifyImageCDN), netlifyImageCDNSetup)
	r.RegisterSetupHook(string(types.ProviderTypeIPX), ipxSetup)
}

// vercelSetup wires the Vercel image optimization settings the deployment
// needs into the host configuration.
func vercelSetup(providerOptions map[string]interface{}, sc *types.SetupContext) error {
	if sc == nil {
		return fmt.Errorf("setup context is required")
	}
	images := map[string]interface{}{
		"sizes":           screenWidths(sc.ModuleOptions),
		"minimumCacheTTL": utils.GetInt(providerOptions, "minimumCacheTTL"),
		"formats":         []interface{}{"image/webp"},
	}
	if images["minimumCacheTTL"] == 0 {
		images["minimumCacheTTL"] = defaultCacheTTL
	}
	if domains := utils.GetStringSlice(sc.ModuleOptions, "domains"); len(domains) > 0 {
		images["domains"] = domains
	}
	sc.HostConfig = config.Merge(sc.HostConfig, map[string]interface{}{
		"vercel": map[string]interface{}{"images": images},
	})
	return nil
}

// awsAmplifySetup wires the Amplify Hosting image settings into the host
// configuration.
func awsAmplifySetup(providerOptions map[string]interface{}, sc *types.SetupContext) error {
	if sc == nil {
		return fmt.Errorf("setup context is required")
	}
	settings := map[string]interface{}{
		"sizes":               screenWidths(sc.ModuleOptions),
		"formats":             []interface{}{"image/webp"},
		"minimumCacheTTL":     defaultCacheTTL,
		"dangerouslyAllowSVG": utils.GetBool(providerOptions, "dangerouslyAllowSVG"),
		"remotePatterns":      remotePatterns(sc.ModuleOptions),
	}
	sc.HostConfig = config.Merge(sc.HostConfig, map[string]interface{}{
		"awsAmplify": map[string]interface{}{"imageSettings": settings},
	})
	return nil
}

// netlifyImageCDNSetup registers the remote domains the Netlify image CDN
// is allowed to fetch from.
func netlifyImageCDNSetup(providerOptions map[string]interface{}, sc *types.SetupContext) error {
	if sc == nil {
		return fmt.Errorf("setup context is required")
	}
	sc.HostConfig = config.Merge(sc.HostConfig, map[string]interface{}{
		"netlify": map[string]interface{}{
			"images": map[string]interface{}{
				"remote_images": remotePatterns(sc.ModuleOptions),
			},
		},
	})
	return nil
}

// ipxSetup records the local serving directory and allowed domains for the
// ipx runtime. The serving subsystem itself reads these later.
func ipxSetup(providerOptions map[string]interface{}, sc *types.SetupContext) error {
	if sc == nil {
		return fmt.Errorf("setup context is required")
	}
	dir := utils.GetString(providerOptions, "dir")
	if dir == "" {
		dir = utils.GetString(sc.ModuleOptions, "dir")
	}
	if dir == "" {
		dir = "public"
	}
	ipx := map[string]interface{}{
		"dir":    dir,
		"maxAge": utils.GetInt(providerOptions, "maxAge"),
	}
	if domains := utils.GetStringSlice(sc.ModuleOptions, "domains"); len(domains) > 0 {
		ipx["domains"] = domains
	}
	sc.HostConfig = config.Merge(sc.HostConfig, map[string]interface{}{
		"ipx": ipx,
	})
	return nil
}

// screenWidths collects the configured screen breakpoint widths, ascending
// and deduplicated. Platform CDNs want the allowed size list up front.
func screenWidths(moduleOptions map[string]interface{}) []interface{} {
	screens := utils.GetMap(moduleOptions, "screens")
	seen := make(map[int]struct{}, len(screens))
	widths := make([]int, 0, len(screens))
	for key := range screens {
		w := utils.GetInt(screens, key)
		if w <= 0 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		widths = append(widths, w)
	}
	sort.Ints(widths)

	out := make([]interface{}, len(widths))
	for i, w := range widths {
		out[i] = w
	}
	return out
}

// remotePatterns turns the configured domains into remote pattern entries.
func remotePatterns(moduleOptions map[string]interface{}) []interface{} {
	domains := utils.GetStringSlice(moduleOptions, "domains")
	patterns := make([]interface{}, 0, len(domains))
	for _, domain := range domains {
		patterns = append(patterns, map[string]interface{}{
			"protocol": "https",
			"hostname": domain,
		})
	}
	return patterns
}
