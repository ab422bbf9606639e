package config

// SiteConfig holds per-host overrides for crawling a specific site.
type SiteConfig struct {
	// Cookie is an HTTP cookie header value to send to this host.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Depth overrides the global MaxDepth for navigations seeded on this
	// host. Zero means use the global value.
	Depth int `yaml:"depth,omitempty"`

	// MaxPages overrides the global page budget for this host.
	// Zero means use the global value.
	MaxPages int `yaml:"maxPages,omitempty"`
}

// SiteFile represents the structure of the .webnav configuration file.
type SiteFile struct {
	// Sites maps host names to their overrides (e.g., "docs.example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains overrides applied to all hosts unless a site entry
	// replaces them.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the merged configuration for a host.
// Site-specific values win over defaults field by field.
func (sf *SiteFile) GetSiteConfig(host string) SiteConfig {
	result := sf.Defaults

	// The struct copy above still shares the Headers map with Defaults;
	// merging into it would pollute every later host's config.
	if len(result.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	site, ok := sf.Sites[host]
	if !ok {
		return result
	}

	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if site.Depth != 0 {
		result.Depth = site.Depth
	}
	if site.MaxPages != 0 {
		result.MaxPages = site.MaxPages
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range site.Headers {
			result.Headers[k] = v
		}
	}

	return result
}
