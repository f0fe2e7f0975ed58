package sqltemplate

import (
	"errors"
)

var ErrNilConnectionFactory = errors.New("nil connection factory supplied")
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrAcquiringConnectionFailed = errors.New("acquiring database connection failed")
var ErrPreparingStatementFailed = errors.New("preparing statement failed")
var ErrBindingParameterFailed = errors.New("binding statement parameter failed")
var ErrExecutingQueryFailed = errors.New("executing query failed")
var ErrExecutingUpdateFailed = errors.New("executing update failed")
var ErrUnsupportedBindValue = errors.New("unsupported bind value kind")
