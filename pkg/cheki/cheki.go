package cheki

import "encoding/json"

// Entry is one day's photo-ticket tally: an optional event label plus
// per-member counts. Counts are never negative.
type Entry struct {
	EventName string         `json:"eventName"`
	Counts    map[string]int `json:"counts"`
}

// Board maps YYYY-MM-DD date strings to entries. A date entry is created
// implicitly when its first member is added and is never removed; an entry
// whose Counts is empty means "no event" for reporting purposes.
type Board map[string]Entry

// Total sums all member counts of the entry.
func (e Entry) Total() int {
	total := 0
	for _, n := range e.Counts {
		total += n
	}
	return total
}

// UnmarshalJSON upgrades the legacy persisted shape, a bare member->count
// object, into the current {eventName, counts} form. The "counts" key is the
// discriminant; after decoding, no code branches on shape again.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if countsRaw, ok := raw["counts"]; ok {
		counts := make(map[string]int)
		if err := json.Unmarshal(countsRaw, &counts); err != nil {
			return err
		}
		var name string
		if nameRaw, ok := raw["eventName"]; ok {
			if err := json.Unmarshal(nameRaw, &name); err != nil {
				return err
			}
		}
		*e = Entry{EventName: name, Counts: counts}
		return nil
	}

	counts := make(map[string]int, len(raw))
	for member, value := range raw {
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return err
		}
		counts[member] = n
	}
	*e = Entry{EventName: "", Counts: counts}
	return nil
}
