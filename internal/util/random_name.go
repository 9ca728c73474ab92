package util

import (
	"fmt"

	"handhistory-server/internal/rng"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Tight", "Loose", "Sticky", "Nitty", "Tilted", "Lucky", "Happy", "Grumpy",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Sleepy", "Prime",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Shark", "Fish", "Whale", "Donkey", "Hippo", "Lion", "Tiger",
	"Bear", "Otter", "Dolphin", "Snake", "Eagle", "Wolf", "Fox", "Rhino", "Panda", "Owl",
}

// RandomSeatNames returns n distinct names, each an adjective followed by an animal
func RandomSeatNames(g rng.Generator, n int) []string {
	if limit := len(adjectives) * len(animals); n > limit {
		n = limit
	}

	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := fmt.Sprintf("%s %s", adjectives[g.Intn(len(adjectives))], animals[g.Intn(len(animals))])
		if seen[name] {
			continue
		}

		seen[name] = true
		names = append(names, name)
	}

	return names
}
