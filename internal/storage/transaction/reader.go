package transaction

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListForUser returns the user's transactions newest first, joined with
// account and category names. Search matches the description or the
// category name, case-insensitively.
func (r *Reader) ListForUser(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]*ListedTransaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id", "t.amount", "t.kind", "t.description", "t.reference_id", "t.occurred_at",
			psql.Raw("a.name AS account_name"),
			psql.Raw("c.name AS category_name"),
		),
		sm.From("transactions").As("t"),
		sm.InnerJoin("accounts").As("a").On(psql.Raw("a.id = t.account_id")),
		sm.InnerJoin("categories").As("c").On(psql.Raw("c.id = t.category_id")),
		sm.Where(psql.Raw("t.user_id = ?", userID)),
		sm.OrderBy("t.occurred_at").Desc(),
	}

	if filter != nil {
		if filter.Search != "" {
			pattern := "%" + escapeLikePattern(filter.Search) + "%"
			queryMods = append(queryMods,
				sm.Where(psql.Raw("(t.description ILIKE ? OR c.name ILIKE ?)", pattern, pattern)))
		}
		if filter.Category != "" {
			queryMods = append(queryMods, sm.Where(psql.Raw("c.name = ?", filter.Category)))
		}
		if filter.Account != "" {
			queryMods = append(queryMods, sm.Where(psql.Raw("a.name = ?", filter.Account)))
		}
		if filter.Kind != "" {
			queryMods = append(queryMods, sm.Where(psql.Raw("t.kind = ?", filter.Kind)))
		}
		if !filter.Since.IsZero() {
			queryMods = append(queryMods, sm.Where(psql.Raw("t.occurred_at >= ?", filter.Since)))
		}
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*ListedTransaction]())
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern escapes ILIKE metacharacters so the search term matches
// literally.
func escapeLikePattern(term string) string {
	return likeEscaper.Replace(term)
}

// ListByReferenceIDs returns the user's rows matching any of the reference
// ids, newest first, capped at limit.
func (r *Reader) ListByReferenceIDs(ctx context.Context, userID uuid.UUID, referenceIDs []string, limit int) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Raw("reference_id = ANY(?)", pq.Array(referenceIDs))),
		sm.OrderBy("occurred_at").Desc(),
		sm.Limit(limit),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DistinctCategoryNames lists the category names the user has transacted
// against, alphabetically.
func (r *Reader) DistinctCategoryNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	q := psql.Select(
		sm.Distinct(),
		sm.Columns("c.name"),
		sm.From("categories").As("c"),
		sm.InnerJoin("transactions").As("t").On(psql.Raw("t.category_id = c.id")),
		sm.Where(psql.Raw("t.user_id = ?", userID)),
		sm.OrderBy("c.name").Asc(),
	)

	return bob.All(ctx, r.exec, q, scan.ColumnMapper[string]("name"))
}

// DistinctAccountNames lists the account names the user has transacted
// against, alphabetically.
func (r *Reader) DistinctAccountNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	q := psql.Select(
		sm.Distinct(),
		sm.Columns("a.name"),
		sm.From("accounts").As("a"),
		sm.InnerJoin("transactions").As("t").On(psql.Raw("t.account_id = a.id")),
		sm.Where(psql.Raw("t.user_id = ?", userID)),
		sm.OrderBy("a.name").Asc(),
	)

	return bob.All(ctx, r.exec, q, scan.ColumnMapper[string]("name"))
}
