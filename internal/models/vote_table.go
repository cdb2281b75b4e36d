package models

import (
	"encoding/json"
	"strconv"
)

// OptionVotes is one row of a vote table: the number of votes cast for an
// option and, per tag id, how many of those voters carry that tag.
type OptionVotes struct {
	Total int64
	ByTag map[int64]int64
}

func NewOptionVotes() *OptionVotes {
	return &OptionVotes{ByTag: map[int64]int64{}}
}

// MarshalJSON flattens the row into {"total": n, "<tag_id>": m, ...}.
func (o OptionVotes) MarshalJSON() ([]byte, error) {
	flat := make(map[string]int64, len(o.ByTag)+1)
	for tagID, count := range o.ByTag {
		flat[strconv.FormatInt(tagID, 10)] = count
	}
	flat["total"] = o.Total
	return json.Marshal(flat)
}

func (o *OptionVotes) UnmarshalJSON(data []byte) error {
	var flat map[string]int64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	o.ByTag = make(map[int64]int64, len(flat))
	for key, count := range flat {
		if key == "total" {
			o.Total = count
			continue
		}
		tagID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return err
		}
		o.ByTag[tagID] = count
	}
	return nil
}

// VoteTable maps option ids of one question to their vote counts.
type VoteTable map[int64]*OptionVotes
