// Package toolutil provides shared input normalisation for vidscout MCP tools.
package toolutil

import (
	"strings"

	"github.com/minsuk/vidscout/internal/engine"
)

// NormAgeTag normalises a demographic bracket field: empty or unknown
// values become "all" so tools never reject on the tag.
func NormAgeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || tag == engine.AgeAll {
		return engine.AgeAll
	}
	if !engine.ValidAgeTag(tag) {
		return engine.AgeAll
	}
	return tag
}

// NormRegion normalises a region code field: empty string falls back to
// the configured default region.
func NormRegion(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return engine.Cfg.DefaultRegion
	}
	return region
}
