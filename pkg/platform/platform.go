// Package platform detects the hosting platform a build is running on.
// Detection is based on the environment variables the platforms themselves
// inject into their build images.
package platform

import "os"

// Platform identifies a hosting platform
type Platform string

const (
	PlatformVercel     Platform = "vercel"
	PlatformNetlify    Platform = "netlify"
	PlatformAWSAmplify Platform = "awsAmplify"
)

// Detector reports the current hosting platform. The environment lookup is
// injectable so tests can simulate platform builds.
type Detector struct {
	lookup func(key string) (string, bool)
}

// NewDetector creates a detector backed by the process environment.
func NewDetector() *Detector {
	return &Detector{lookup: os.LookupEnv}
}

// NewDetectorWithLookup creates a detector with a custom environment lookup.
func NewDetectorWithLookup(lookup func(key string) (string, bool)) *Detector {
	return &Detector{lookup: lookup}
}

// CurrentPlatform returns the detected hosting platform, or "" when the
// environment matches none of the recognized platforms.
func (d *Detector) CurrentPlatform() Platform {
	if v, ok := d.lookup("VERCEL"); ok && v != "" {
		return PlatformVercel
	}
	if v, ok := d.lookup("NETLIFY"); ok && v == "true" {
		return PlatformNetlify
	}
	// Amplify builds carry both the app ID and the branch name.
	if _, ok := d.lookup("AWS_APP_ID"); ok {
		if _, ok := d.lookup("AWS_BRANCH"); ok {
			return PlatformAWSAmplify
		}
	}
	return ""
}

// CurrentPlatform reports the hosting platform from the process environment.
func CurrentPlatform() Platform {
	return NewDetector().CurrentPlatform()
}
