package store

import (
	"strconv"
	"strings"

	"postboard/config"
	"postboard/domain"
)

const postColumns = "id, title, image, category_id, description, content, status_id"

const (
	insertPostSQL = `INSERT INTO posts (title, image, category_id, description, content, status_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	updatePostSQL = `UPDATE posts
SET title = $1, image = $2, category_id = $3, description = $4, content = $5, status_id = $6
WHERE id = $7`
	deletePostSQL  = `DELETE FROM posts WHERE id = $1`
	selectPostSQL  = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	likeEscapeChar = `\`
)

type Dialect string

const (
	Postgres Dialect = config.DriverPostgres
	SQLite   Dialect = config.DriverSQLite
)

// like is the case-insensitive pattern operator. SQLite's LIKE already
// ignores ASCII case.
func (d Dialect) like() string {
	if d == Postgres {
		return "ILIKE"
	}
	return "LIKE"
}

// listQuery holds the two statements of a list request. CountArgs is always
// a prefix of Args: the filter values without limit and offset.
type listQuery struct {
	SQL       string
	Args      []any
	CountSQL  string
	CountArgs []any
}

func buildList(d Dialect, q domain.ListQuery) listQuery {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")
	args := []any{}

	if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		where.WriteString(" AND category_id = " + placeholder(len(args)))
	}
	if q.Keyword != "" {
		args = append(args, "%"+escapeLike(q.Keyword)+"%")
		p := placeholder(len(args))
		cond := func(col string) string {
			return col + " " + d.like() + " " + p + " ESCAPE '" + likeEscapeChar + "'"
		}
		where.WriteString(" AND (" + cond("title") + " OR " + cond("description") + " OR " + cond("content") + ")")
	}
	filters := len(args)

	selectSQL := "SELECT " + postColumns + " FROM posts" + where.String() +
		" ORDER BY id DESC LIMIT " + placeholder(filters+1) + " OFFSET " + placeholder(filters+2)
	args = append(args, q.Limit, q.Offset())

	return listQuery{
		SQL:       selectSQL,
		Args:      args,
		CountSQL:  "SELECT COUNT(*) FROM posts" + where.String(),
		CountArgs: args[:filters:filters],
	}
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

var likeEscaper = strings.NewReplacer(
	likeEscapeChar, likeEscapeChar+likeEscapeChar,
	"%", likeEscapeChar+"%",
	"_", likeEscapeChar+"_",
)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
