package models

import "time"

type Profile struct {
	ID          int64
	Username    string
	Password    *string
	Salt        *string
	Description *string
	Body        *string
	Created     time.Time
	Updated     time.Time
}

type Question struct {
	ID          int64
	ProfileID   int64
	Prompt      string
	Description string
	Created     time.Time
	Updated     time.Time
}

type Option struct {
	ID          int64
	ProfileID   int64
	QuestionID  int64
	Prompt      string
	Description *string
	Created     time.Time
	Updated     time.Time
}

type Vote struct {
	ID          int64
	ProfileID   int64
	QuestionID  int64
	OptionID    int64
	Header      *int64
	Body        *string
	Description *string
	Active      int64
	Created     time.Time
	Updated     time.Time
}
