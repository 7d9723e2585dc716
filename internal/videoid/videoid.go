// Package videoid extracts canonical 11-character video identifiers from
// source URLs. The identifier is the join key between the schedule, the
// analysis store and the metrics fetch, so extraction must be pure and
// deterministic.
package videoid

import "regexp"

// The two accepted URL shapes, tried in order: the watch?v= query form
// and the short-link path form.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:be/)([0-9A-Za-z_-]{11})`),
}

// Extract returns the video ID embedded in url, or ok=false when the URL
// carries no recognizable identifier.
func Extract(url string) (id string, ok bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
