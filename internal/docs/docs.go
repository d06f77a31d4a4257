// Package docs serves the built-in help topics shown by the docs command.
// Topics are markdown files embedded at build time.
package docs

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// DefaultTopic is rendered when the docs command is invoked without a topic.
const DefaultTopic = "getting-started"

// Topics lists the available topic names in sorted order.
func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, path := range entries {
		base := filepath.Base(path)
		topic := strings.TrimSuffix(base, filepath.Ext(base))
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown source of a topic. Topic lookup is
// case-insensitive.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + topic + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Title extracts the first level-one heading of a topic, falling back to the
// topic name itself.
func Title(topic string) string {
	src, ok := Get(topic)
	if !ok {
		return topic
	}
	for _, line := range strings.Split(src, "\n") {
		if rest, found := strings.CutPrefix(line, "# "); found {
			return strings.TrimSpace(rest)
		}
	}
	return topic
}
