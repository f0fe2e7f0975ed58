package sqltemplate

import (
	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

// FirstRow returns an extractor that advances the cursor once and maps the
// row if one exists. A nil result means zero rows matched; that is a
// recoverable absence, not an error.
//
// No arity check is performed: if more than one row matches, only the first
// is returned. Callers must guarantee at most one row when that matters.
func FirstRow[T any](mapper RowMapper[T]) ResultExtractor[*T] {
	return func(cursor driver.Cursor) (*T, error) {
		if !cursor.Next() {
			if err := cursor.Err(); err != nil {
				return nil, err
			}

			return nil, nil
		}

		result, mapErr := mapper(cursor, cursor.RowNumber())
		if mapErr != nil {
			return nil, mapErr
		}

		return &result, nil
	}
}

// AllRows returns an extractor that maps every remaining cursor row in cursor
// order and returns the accumulated slice. Zero rows produce an empty,
// non-nil slice.
func AllRows[T any](mapper RowMapper[T]) ResultExtractor[[]T] {
	return func(cursor driver.Cursor) ([]T, error) {
		results := make([]T, 0)

		for cursor.Next() {
			result, mapErr := mapper(cursor, cursor.RowNumber())
			if mapErr != nil {
				return nil, mapErr
			}

			results = append(results, result)
		}

		if err := cursor.Err(); err != nil {
			return nil, err
		}

		return results, nil
	}
}
