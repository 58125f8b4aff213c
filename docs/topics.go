// Package docs holds the user documentation of zen, one markdown file per
// topic, shown by 'zen topic'.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing all the others.
const index = "readme"

// Topic is a documentation page.
type Topic struct {
	Name  string // as given to GetTopic
	Title string // its first heading
}

// GetTopic returns the content of a documentation topic. "*" returns all the
// topics.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(topic)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", errors.Wrapf(err, "topic %q not found, 'zen topic -list' lists them", topic)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated
// together. "*" expands to every topic but the index.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			all, err := Topics()
			if err != nil {
				return "", err
			}
			names = names[:0]
			for _, t := range all {
				names = append(names, t.Name)
			}
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Topics returns every topic but the index, sorted by name.
func Topics() ([]Topic, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == index {
			continue
		}
		content, err := docs.ReadFile(e.Name())
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

// title returns the text of the first level 1 heading.
func title(content []byte) string {
	s := bufio.NewScanner(bytes.NewReader(content))
	for s.Scan() {
		if t, ok := strings.CutPrefix(s.Text(), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
