package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/tagpoll/tagpoll/internal/models"
)

// VoteTabulator cross-tabulates the votes of a question by voter tag.
type VoteTabulator struct {
	exec *Executor
}

func NewVoteTabulator(exec *Executor) *VoteTabulator {
	return &VoteTabulator{exec: exec}
}

type optionCount struct {
	optionID int64
	count    int64
}

type optionTagCount struct {
	optionID int64
	tagID    int64
	count    int64
}

// Tabulate returns, for every option of the question, the total number of
// votes and, per tag, the number of voters carrying that tag. Options
// without votes are present with a zero total. Every tag of a voter is
// counted, whatever its category.
func (t *VoteTabulator) Tabulate(ctx context.Context, questionID int64) (models.VoteTable, error) {
	optionIDs, err := Query(ctx, t.exec, sq.Expr(queryVoteTableOptions, questionID), scanInt64)
	if err != nil {
		return nil, err
	}

	table := make(models.VoteTable, len(optionIDs))
	for _, id := range optionIDs {
		table[id] = models.NewOptionVotes()
	}

	totals, err := Query(ctx, t.exec, sq.Expr(queryVoteTableTotals, questionID), scanOptionCount)
	if err != nil {
		return nil, err
	}
	for _, c := range totals {
		if row, ok := table[c.optionID]; ok {
			row.Total = c.count
		}
	}

	if len(optionIDs) == 0 {
		return table, nil
	}

	builder := psql.Select("vote.option_id", "profile_tag.tag_id", "COUNT(1)").
		From(tableVote).
		Join("profile_tag ON profile_tag.profile_id = vote.profile_id").
		Where(sq.Eq{"vote.option_id": optionIDs}).
		GroupBy("vote.option_id", "profile_tag.tag_id")

	byTag, err := Query(ctx, t.exec, builder, scanOptionTagCount)
	if err != nil {
		return nil, err
	}
	for _, c := range byTag {
		if row, ok := table[c.optionID]; ok {
			row.ByTag[c.tagID] = c.count
		}
	}

	return table, nil
}

func scanOptionCount(rows *sql.Rows) (optionCount, error) {
	var c optionCount
	err := rows.Scan(&c.optionID, &c.count)
	return c, err
}

func scanOptionTagCount(rows *sql.Rows) (optionTagCount, error) {
	var c optionTagCount
	err := rows.Scan(&c.optionID, &c.tagID, &c.count)
	return c, err
}
