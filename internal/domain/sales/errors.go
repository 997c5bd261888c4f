package sales

import "errors"

var ErrSalesNotFound = errors.New("sales record not found")
