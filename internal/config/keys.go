package config

var defaultKeys = map[int]string{
	4: "dfjk",
	5: "df jk",
	6: "sdfjkl",
	7: "sdf jkl",
	8: "asdfjkl;",
	9: "asdf jkl;",
}

// LaneKeys returns one key per lane. Custom keys are used when there are
// enough of them for the chart.
func (s *Settings) LaneKeys(lanes int) []rune {
	if custom := []rune(s.Keys); len(custom) >= lanes {
		return custom[:lanes]
	}
	if keys, ok := defaultKeys[lanes]; ok {
		return []rune(keys)
	}
	keys := []rune(defaultKeys[9])
	if lanes < len(keys) {
		return keys[:lanes]
	}
	return keys
}

func KeyLane(r rune, keys []rune) int {
	for i, c := range keys {
		if r == c {
			return i
		}
	}
	return -1
}
