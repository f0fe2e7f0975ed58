// Package sqltemplate provides a templated SQL execution layer: it runs a
// caller-supplied SQL statement with caller-supplied parameter-binding and
// result-extraction strategies, guaranteeing correct lifecycle management of
// the underlying connection, prepared statement, and cursor on every exit
// path.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX) via the driver subpackage
//   - Strict acquire/release discipline: connection → statement → cursor,
//     released in reverse order exactly once per call, success or failure
//   - Caller-extensible binding and extraction through small function contracts
//   - Uniform sentinel errors for driver-layer failures; extractor errors
//     propagate unwrapped
//   - Configurable logging and metrics through functional options
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	tpl, _ := sqltemplate.NewTemplateFromPGXPool(db)
//
//	// With operational logging
//	tpl, _ := sqltemplate.NewTemplateFromPGXPool(
//		db,
//		sqltemplate.WithLogger(logger),
//	)
//
//	mapper := func(cursor driver.Cursor, rowNum int) (User, error) {
//		id, err := cursor.Int64("id")
//		if err != nil {
//			return User{}, err
//		}
//		account, err := cursor.String("account")
//		if err != nil {
//			return User{}, err
//		}
//		return User{ID: id, Account: account}, nil
//	}
//
//	user, _ := sqltemplate.QueryForObject(ctx, tpl, "select * from users where id = $1", mapper, 1)
//	users, _ := sqltemplate.QueryForList(ctx, tpl, "select * from users", mapper)
//	affected, _ := tpl.Update(ctx, "update users set account = $1 where id = $2", "gugu", 1)
package sqltemplate
