package sqlconfig

import (
	"context"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

// Category represents a category record. Default categories have no UserEmail.
type Category struct {
	ID        string  `db:"id"`
	UserEmail *string `db:"user_email"`
	Name      string  `db:"name"`
	Color     *string `db:"color"`
}

//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	FindOwned(ctx context.Context, userEmail, id string) (*Category, error)
	Insert(ctx context.Context, category *Category) error
	List(ctx context.Context, userEmail string) ([]*Category, error)
	Delete(ctx context.Context, userEmail, id string) error
}

type CategoriesTable struct {
	exec bob.Executor
}

var _ ICategoryTable = (*CategoriesTable)(nil)

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// FindOwned only matches categories created by userEmail, never the shared defaults.
func (t *CategoriesTable) FindOwned(ctx context.Context, userEmail, id string) (*Category, error) {
	q := psql.Select(
		sm.Columns("id", "user_email", "name", "color"),
		sm.From(CategoriesTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Category]())
	if err != nil {
		return nil, notFound(err, CategoriesTableName)
	}
	return &row, nil
}

func (t *CategoriesTable) Insert(ctx context.Context, category *Category) error {
	q := psql.Insert(
		im.Into(CategoriesTableName, "id", "user_email", "name", "color"),
		im.Values(
			psql.Arg(category.ID),
			psql.Arg(category.UserEmail),
			psql.Arg(category.Name),
			psql.Arg(category.Color),
		),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// List returns the default categories followed by the ones owned by userEmail.
func (t *CategoriesTable) List(ctx context.Context, userEmail string) ([]*Category, error) {
	q := psql.Select(
		sm.Columns("id", "user_email", "name", "color"),
		sm.From(CategoriesTableName),
		sm.Where(psql.Or(
			psql.Quote("user_email").IsNull(),
			psql.Quote("user_email").EQ(psql.Arg(userEmail)),
		)),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[Category]())
	if err != nil {
		return nil, err
	}

	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (t *CategoriesTable) Delete(ctx context.Context, userEmail, id string) error {
	q := psql.Delete(
		dm.From(CategoriesTableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_email").EQ(psql.Arg(userEmail))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category %s: %w", id, ErrInUse)
	}
	return err
}
