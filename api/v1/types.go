package v1

import "time"

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
}

type Health struct {
	Status string `json:"status"`
}

type Profile struct {
	Id          int64     `json:"id"`
	Username    string    `json:"username"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateProfileRequest struct {
	Username    string  `json:"username" binding:"required,max=300,username"`
	Password    *string `json:"password" binding:"required,max=128"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
	Body        *string `json:"body" binding:"omitnil,max=10000"`
}

type UpdateProfileRequest struct {
	Username    *string `json:"username" binding:"omitnil,min=1,max=300,username"`
	Password    *string `json:"password" binding:"omitnil,max=128"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
	Body        *string `json:"body" binding:"omitnil,max=10000"`
}

type LoginRequest struct {
	Username string  `json:"username" binding:"required,max=300"`
	Password *string `json:"password" binding:"required,max=128"`
}

type Session struct {
	ProfileId int64  `json:"profile_id"`
	Token     string `json:"token"`
}

type Question struct {
	Id          int64     `json:"id"`
	ProfileId   int64     `json:"profile_id"`
	Prompt      string    `json:"prompt"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateQuestionRequest struct {
	Prompt      string `json:"prompt" binding:"required,max=3000"`
	Description string `json:"description" binding:"required,max=10000"`
}

type UpdateQuestionRequest struct {
	Prompt      *string `json:"prompt" binding:"omitnil,max=3000"`
	Description *string `json:"description" binding:"omitnil,max=10000"`
}

type QuestionCreated struct {
	QuestionId int64 `json:"question_id"`
}

type QuestionPage struct {
	Page      int        `json:"page"`
	PageCount int        `json:"page_count"`
	Total     int        `json:"total"`
	Questions []Question `json:"questions"`
}

type ListTagQuestionsParams struct {
	Page *int `form:"page" json:"page,omitempty"`
}

type Option struct {
	Id          int64     `json:"id"`
	ProfileId   int64     `json:"profile_id"`
	QuestionId  int64     `json:"question_id"`
	Prompt      string    `json:"prompt"`
	Description *string   `json:"description"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateOptionRequest struct {
	QuestionId  *int64  `json:"question_id" binding:"required,min=0"`
	Prompt      string  `json:"prompt" binding:"required,max=1000"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
}

type UpdateOptionRequest struct {
	Prompt      *string `json:"prompt" binding:"omitnil,max=1000"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
}

type OptionCreated struct {
	OptionId int64 `json:"option_id"`
}

type Vote struct {
	Id          int64     `json:"id"`
	ProfileId   int64     `json:"profile_id"`
	QuestionId  int64     `json:"question_id"`
	OptionId    int64     `json:"option_id"`
	Header      *int64    `json:"header"`
	Body        *string   `json:"body"`
	Description *string   `json:"description"`
	Active      int64     `json:"active"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateVoteRequest struct {
	QuestionId  *int64  `json:"question_id" binding:"required,min=0"`
	OptionId    *int64  `json:"option_id" binding:"required,min=0"`
	Header      *int64  `json:"header" binding:"omitnil,min=0,max=1000"`
	Body        *string `json:"body" binding:"omitnil,max=10000"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
	Active      *int64  `json:"active" binding:"required,min=0,max=10000"`
}

type UpdateVoteRequest struct {
	Header      *int64  `json:"header" binding:"omitnil,min=0,max=1000"`
	Body        *string `json:"body" binding:"omitnil,max=10000"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
	Active      *int64  `json:"active" binding:"omitnil,min=0,max=10000"`
}

type VoteCreated struct {
	VoteId int64 `json:"vote_id"`
}

type Tag struct {
	Id          int64     `json:"id"`
	ProfileId   int64     `json:"profile_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateTagRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
	Category    *string `json:"category" binding:"omitnil,tagcategory"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitnil,min=1,max=100"`
	Description *string `json:"description" binding:"omitnil,max=3000"`
	Category    *string `json:"category" binding:"omitnil,tagcategory"`
}

type TagCreated struct {
	TagId int64 `json:"tag_id"`
}

type TagOnQuestion struct {
	TagId       int64   `json:"tag_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type TagOnProfile struct {
	TagId       int64   `json:"tag_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type TagQuestionRequest struct {
	TagId      *int64 `json:"tag_id" binding:"required,min=0"`
	QuestionId *int64 `json:"question_id" binding:"required,min=0"`
}

type TagProfileRequest struct {
	TagId *int64 `json:"tag_id" binding:"required,min=0"`
}
