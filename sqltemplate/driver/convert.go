package driver

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrNoSuchColumn = errors.New("no such column in result row")
var ErrColumnConversionFailed = errors.New("column value conversion failed")

func conversionError(column string, value any, target string) error {
	return errors.Join(
		ErrColumnConversionFailed,
		fmt.Errorf("column %q: cannot convert %T to %s", column, value, target),
	)
}

func toInt64(column string, value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, conversionError(column, value, "int64")
	}
}

func toFloat64(column string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, conversionError(column, value, "float64")
	}
}

func toBool(column string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	default:
		return false, conversionError(column, value, "bool")
	}
}

func toString(column string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", conversionError(column, value, "string")
	}
}

func toBytes(column string, value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, conversionError(column, value, "[]byte")
	}
}

func toTime(column string, value any) (time.Time, error) {
	if v, ok := value.(time.Time); ok {
		return v, nil
	}

	return time.Time{}, conversionError(column, value, "time.Time")
}
