package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql renders $n placeholders, understood by both PostgreSQL and DuckDB.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Table names
const (
	tableProfile     = "profile"
	tableUsername    = "profile_username"
	tableQuestion    = "question"
	tableOption      = "option_"
	tableTag         = "tag"
	tableTagName     = "tag_name"
	tableVote        = "vote"
	tableProfileTag  = "profile_tag"
	tableQuestionTag = "question_tag"
)

// Column lists, in decoder order
var (
	profileColumns = []string{
		"id", "username", "password", "salt", "description", "body", "created", "updated",
	}
	questionColumns = []string{
		"id", "profile_id", "prompt", "description", "created", "updated",
	}
	optionColumns = []string{
		"id", "profile_id", "question_id", "prompt", "description", "created", "updated",
	}
	tagColumns = []string{
		"id", "profile_id", "name", "description", "category", "created", "updated",
	}
	voteColumns = []string{
		"id", "profile_id", "question_id", "option_id", "header", "body", "description", "active", "created", "updated",
	}
)

// Suggestion queries
const (
	querySuggestionSeedTags = `
		SELECT tag_id
		FROM question_tag
		WHERE question_id = $1`
)

// Vote table queries
const (
	queryVoteTableOptions = `
		SELECT id
		FROM option_
		WHERE question_id = $1
		ORDER BY id`

	queryVoteTableTotals = `
		SELECT option_id, COUNT(1)
		FROM vote
		WHERE question_id = $1
		GROUP BY option_id`
)

// Tagging queries
const (
	queryTagsOnQuestion = `
		SELECT question_tag.tag_id, tag.name, tag.description, tag.category
		FROM question_tag
			JOIN tag ON question_tag.tag_id = tag.id
		WHERE question_tag.question_id = $1
		ORDER BY question_tag.tag_id`

	queryTagsOnProfile = `
		SELECT profile_tag.tag_id, tag.name, tag.description
		FROM profile_tag
			JOIN tag ON profile_tag.tag_id = tag.id
		WHERE profile_tag.profile_id = $1
		ORDER BY profile_tag.tag_id`

	queryCountQuestionsWithTag = `
		SELECT COUNT(question_id)
		FROM question_tag
		WHERE tag_id = $1`
)

// now is the timestamp expression used for the updated column.
var now = sq.Expr("now()")
