// Package vidcat aggregates video listings from third-party tube sites into a
// local catalog. It drives a browser session across the configured sites,
// extracts candidate videos, normalizes their URLs into canonical keys,
// resolves playable embed URLs, and stores only videos not already present.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package vidcat
