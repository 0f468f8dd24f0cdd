package dict

import "strings"

// Topic is a closed-set category tag on an entry.
type Topic string

// Known topics, matching the labels published in the feed's topic column.
const (
	TopicNature   Topic = "nature"
	TopicAnimals  Topic = "animals"
	TopicBody     Topic = "body"
	TopicFood     Topic = "food"
	TopicClothing Topic = "clothing"
	TopicHouse    Topic = "house"
	TopicFamily   Topic = "family"
	TopicSociety  Topic = "society"
	TopicScience  Topic = "science"
	TopicArts     Topic = "arts"
	TopicTravel   Topic = "travel"
	TopicTime     Topic = "time"
)

var topics = []Topic{
	TopicNature, TopicAnimals, TopicBody, TopicFood, TopicClothing,
	TopicHouse, TopicFamily, TopicSociety, TopicScience, TopicArts,
	TopicTravel, TopicTime,
}

// Topics returns all known topics. The returned slice is a copy.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// ParseTopic maps a feed topic label to its Topic value, ignoring case and
// surrounding whitespace. Returns false for unknown labels — the feed parser
// treats those entries as having no topic rather than rejecting the row.
func ParseTopic(s string) (Topic, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range topics {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
