package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
)

// MaxSuggestions is the largest number of questions Suggest returns.
const MaxSuggestions = 3

// SuggestionEngine finds questions sharing tags with a seed question.
type SuggestionEngine struct {
	exec *Executor
}

func NewSuggestionEngine(exec *Executor) *SuggestionEngine {
	return &SuggestionEngine{exec: exec}
}

// Suggest returns up to MaxSuggestions questions related to questionID.
//
// Candidates are collected in bands: first questions sharing all k tags of
// the seed, then exactly k-1, down to exactly 1, each band in random order.
// The seed and already collected questions are never repeated. A seed
// without tags yields an empty result.
func (e *SuggestionEngine) Suggest(ctx context.Context, questionID int64) ([]models.Question, error) {
	tagIDs, err := Query(ctx, e.exec, sq.Expr(querySuggestionSeedTags, questionID), scanInt64)
	if err != nil {
		return nil, err
	}
	if len(tagIDs) == 0 {
		return []models.Question{}, nil
	}

	suggested := make([]int64, 0, MaxSuggestions)
	for numTags := len(tagIDs); numTags > 0 && len(suggested) < MaxSuggestions; numTags-- {
		ids, err := e.questionsWithExactTagCount(ctx, questionID, suggested, tagIDs, numTags)
		if err != nil {
			return nil, err
		}
		suggested = append(suggested, ids...)
	}

	if len(suggested) == 0 {
		return []models.Question{}, nil
	}
	return e.loadInOrder(ctx, suggested)
}

// questionsWithExactTagCount returns up to the remaining number of question
// ids that carry exactly numTags of tagIDs.
func (e *SuggestionEngine) questionsWithExactTagCount(
	ctx context.Context,
	seedID int64,
	exclude []int64,
	tagIDs []int64,
	numTags int,
) ([]int64, error) {
	excluded := append([]int64{seedID}, exclude...)

	builder := psql.Select("question_id").
		From(tableQuestionTag).
		Where(sq.NotEq{"question_id": excluded}).
		Where(sq.Eq{"tag_id": tagIDs}).
		GroupBy("question_id").
		Having("COUNT(1) = ?", numTags).
		OrderBy("RANDOM()").
		Limit(uint64(MaxSuggestions - len(exclude)))

	return Query(ctx, e.exec, builder, scanInt64)
}

func (e *SuggestionEngine) loadInOrder(ctx context.Context, ids []int64) ([]models.Question, error) {
	questions, err := NewQuestionStore(e.exec).List(ctx, ByIDs(ids...))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}
