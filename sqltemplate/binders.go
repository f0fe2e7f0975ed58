package sqltemplate

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeus6768/sql-template-go/sqltemplate/driver"
)

// BindPositional returns a ParameterBinder that binds params in input order:
// params[i] is bound to placeholder index i+1 through the generic set-object
// path. No reordering and no named-parameter support.
//
// Each value must be one of the supported kinds (nil, bool, any integer
// width, float32/64, string, []byte, time.Time); anything else fails with
// ErrUnsupportedBindValue before the driver ever sees it.
func BindPositional(params ...any) ParameterBinder {
	return func(stmt driver.Statement) error {
		for i, param := range params {
			if err := validateBindValue(param); err != nil {
				return errors.Join(err, fmt.Errorf("parameter index %d", i+1))
			}

			if bindErr := stmt.Bind(i+1, param); bindErr != nil {
				return bindErr
			}
		}

		return nil
	}
}

// validateBindValue checks that value belongs to the closed set of bind kinds
// the template supports.
func validateBindValue(value any) error {
	switch value.(type) {
	case nil:
		return nil
	case bool:
		return nil
	case int, int8, int16, int32, int64:
		return nil
	case uint, uint8, uint16, uint32, uint64:
		return nil
	case float32, float64:
		return nil
	case string:
		return nil
	case []byte:
		return nil
	case time.Time:
		return nil
	default:
		return errors.Join(ErrUnsupportedBindValue, fmt.Errorf("got %T", value))
	}
}
