package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/deepnav/webnav/internal/model"
)

// DefaultSiteConfigFile is the default site-configuration file name.
const DefaultSiteConfigFile = ".webnav"

// LoadSiteFile loads per-site configurations from a YAML file.
// If the file does not exist, it returns ErrSiteConfigNotFound; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadSiteFile(path string) (*SiteFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSiteConfigNotFound
		}
		return nil, err
	}

	var sf SiteFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}

	if sf.Sites == nil {
		sf.Sites = make(map[string]SiteConfig)
	}

	return &sf, nil
}

// FindSiteConfigFile searches for the site-config file in order:
//  1. The explicit path, if given
//  2. .webnav in the current directory
//  3. .webnav in the user's home directory
//
// Returns the path if found, or empty string.
func FindSiteConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultSiteConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultSiteConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// ApplyEnv overrides config fields from WEBNAV_* environment variables,
// loading a .env file first if one exists in the working directory.
// Unset or malformed variables leave the current value in place.
func (c *Config) ApplyEnv() {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("WEBNAV_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("WEBNAV_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("WEBNAV_HISTORY_DB_DIR"); v != "" {
		c.HistoryDBDir = v
	}
	if v := os.Getenv("WEBNAV_STRATEGY"); v != "" {
		if s := model.Strategy(v); s.Valid() {
			c.Strategy = s
		}
	}
	if v := os.Getenv("WEBNAV_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDepth = n
		}
	}
	if v := os.Getenv("WEBNAV_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxPages = n
		}
	}
	if v := os.Getenv("WEBNAV_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("WEBNAV_CRAWL_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CrawlDelay = d
		}
	}
	if v := os.Getenv("WEBNAV_URL_BLACKLIST"); v != "" {
		parts := strings.Split(v, ",")
		blacklist := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				blacklist = append(blacklist, p)
			}
		}
		c.URLBlacklist = blacklist
	}
}
