package roster

import "errors"

var ErrCellOutsideWeek = errors.New("roster cell is not part of the week")
