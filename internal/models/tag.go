package models

import "time"

type TagCategory string

const (
	TagCategoryIdentity TagCategory = "identity"
)

type Tag struct {
	ID          int64
	ProfileID   int64
	Name        string
	Description *string
	Category    *TagCategory
	Created     time.Time
	Updated     time.Time
}

type ProfileTag struct {
	TagID     int64
	ProfileID int64
}

type QuestionTag struct {
	TagID      int64
	QuestionID int64
}

// TagOnQuestion is a tag as listed on a question.
type TagOnQuestion struct {
	TagID       int64
	Name        string
	Description *string
	Category    *TagCategory
}

// TagOnProfile is a tag as listed on a profile.
type TagOnProfile struct {
	TagID       int64
	Name        string
	Description *string
}
