// Package userstore shows how to build a repository on top of the SQL
// template: goqu builds the statements, the template owns connection,
// statement, and cursor lifecycle, and MapUser converts rows.
package userstore

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/zeus6768/sql-template-go/sqltemplate"
	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

const (
	tableUsers      = "users"
	colID           = "id"
	colAccount      = "account"
	colToken        = "token"
	colProfile      = "profile"
	dialectPostgres = "postgres"
)

var ErrNotAPair = errors.New("expected exactly two matching users")

// Store is a users repository built on the SQL template.
type Store struct {
	tpl sqltemplate.Template
}

// New creates a Store executing against the given template.
func New(tpl sqltemplate.Template) Store {
	return Store{tpl: tpl}
}

// FindByID returns the user with the given id, or nil when none exists.
func (s Store) FindByID(ctx context.Context, id int64) (*User, error) {
	query, args, buildErr := goqu.Dialect(dialectPostgres).
		From(tableUsers).
		Select(colID, colAccount, colToken, colProfile).
		Where(goqu.Ex{colID: id}).
		Prepared(true).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	return sqltemplate.QueryForObject(ctx, s.tpl, query, MapUser, args...)
}

// FindAll returns every user in id order.
func (s Store) FindAll(ctx context.Context) ([]User, error) {
	query, args, buildErr := goqu.Dialect(dialectPostgres).
		From(tableUsers).
		Select(colID, colAccount, colToken, colProfile).
		Order(goqu.I(colID).Asc()).
		Prepared(true).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	return sqltemplate.QueryForList(ctx, s.tpl, query, MapUser, args...)
}

// FindPair returns exactly the two users with the given ids. A custom
// extractor enforces the arity: fewer or more matching rows is an error.
func (s Store) FindPair(ctx context.Context, firstID, secondID int64) ([]User, error) {
	query, args, buildErr := goqu.Dialect(dialectPostgres).
		From(tableUsers).
		Select(colID, colAccount, colToken, colProfile).
		Where(goqu.C(colID).In(firstID, secondID)).
		Order(goqu.I(colID).Asc()).
		Prepared(true).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	pairExtractor := func(cursor driver.Cursor) ([]User, error) {
		const pairSize = 2

		users, extractErr := sqltemplate.AllRows(MapUser)(cursor)
		if extractErr != nil {
			return nil, extractErr
		}

		if len(users) != pairSize {
			return nil, ErrNotAPair
		}

		return users, nil
	}

	return sqltemplate.Execute(ctx, s.tpl, query, sqltemplate.BindPositional(args...), pairExtractor)
}

// Create inserts a new user with a generated access token and returns the token.
func (s Store) Create(ctx context.Context, account string, profile Profile) (string, error) {
	profileJSON, marshalErr := jsoniter.ConfigFastest.Marshal(profile)
	if marshalErr != nil {
		return "", marshalErr
	}

	token := uuid.NewString()

	query, args, buildErr := goqu.Dialect(dialectPostgres).
		Insert(tableUsers).
		Cols(colAccount, colToken, colProfile).
		Vals(goqu.Vals{account, token, profileJSON}).
		Prepared(true).
		ToSQL()
	if buildErr != nil {
		return "", buildErr
	}

	if _, updateErr := s.tpl.Update(ctx, query, args...); updateErr != nil {
		return "", updateErr
	}

	return token, nil
}

// Rename changes a user's account name and reports whether a row was changed.
func (s Store) Rename(ctx context.Context, id int64, account string) (bool, error) {
	query, args, buildErr := goqu.Dialect(dialectPostgres).
		Update(tableUsers).
		Set(goqu.Record{colAccount: account}).
		Where(goqu.Ex{colID: id}).
		Prepared(true).
		ToSQL()
	if buildErr != nil {
		return false, buildErr
	}

	affected, updateErr := s.tpl.Update(ctx, query, args...)
	if updateErr != nil {
		return false, updateErr
	}

	return affected > 0, nil
}
