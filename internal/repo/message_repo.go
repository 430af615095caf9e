package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/didi/gendry/builder"

	"github.com/neurodoc-ai/neurodoc/internal/model"
	appErr "github.com/neurodoc-ai/neurodoc/internal/pkg/errors"
)

// MessageRepo persists the conversation log. Each call is a single
// statement; sqlite gives per-statement durability and nothing more is
// required across statements.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) Append(ctx context.Context, role, content string) (int64, error) {
	data := map[string]interface{}{
		"role":    role,
		"content": content,
	}
	sqlStr, args, err := builder.BuildInsert("messages", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: append message: %v", appErr.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %v", appErr.ErrStorage, err)
	}
	return id, nil
}

// Recent returns up to limit of the newest messages, reordered oldest
// first so callers can feed them straight into a prompt.
func (r *MessageRepo) Recent(ctx context.Context, limit int) ([]model.Message, error) {
	if limit <= 0 {
		return nil, nil
	}
	where := map[string]interface{}{
		"_orderby": "id desc",
		"_limit":   []uint{0, uint(limit)},
	}
	sqlStr, args, err := builder.BuildSelect("messages", where, []string{"id", "role", "content", "timestamp"})
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", appErr.ErrStorage, err)
	}
	defer rows.Close()
	var newestFirst []model.Message
	for rows.Next() {
		var item model.Message
		var ts string
		if err := rows.Scan(&item.ID, &item.Role, &item.Content, &ts); err != nil {
			return nil, err
		}
		item.Timestamp = parseTimestamp(ts)
		newestFirst = append(newestFirst, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	messages := make([]model.Message, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		messages = append(messages, newestFirst[i])
	}
	return messages, nil
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
