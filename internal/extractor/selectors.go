package extractor

// mainContentSelectors are tried in order; the first selector with matches
// supplies the main content block (the largest match by text length).
var mainContentSelectors = []string{
	"main", "article", `[role="main"]`, ".content", ".main-content",
	".article-content", ".post-content", ".entry-content",
	"#content", "#main-content", ".page-content",
}

// navigationSelectors identify nav-like containers for navigation-element
// extraction and for the main-content fallback strip.
var navigationSelectors = []string{
	"nav", ".nav", ".navigation", ".menu", ".main-nav",
	`[role="navigation"]`, ".navbar", ".site-nav",
}

// sidebarSelectors are stripped in the main-content fallback.
var sidebarSelectors = []string{
	"aside", ".sidebar", ".side-nav", ".secondary",
}

// footerSelectors are stripped in the main-content fallback.
var footerSelectors = []string{
	"footer", ".footer", `[role="contentinfo"]`,
}

// noiseSelectors are removed from the document before any extraction.
// Scripts are removed wholesale; JSON-LD bodies are captured beforehand so
// structured data survives the removal.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe", "embed", "object",
	".advertisement", ".ads", ".sponsor", ".popup", ".modal",
	`[class*="ad-"]`, `[id*="ad-"]`, ".cookie-banner",
}
