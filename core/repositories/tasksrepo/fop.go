package tasksrepo

import "github.com/jrazmi/todolist/core/scaffolding/fop"

// OrderByPK is the primary key column, also the paging tie breaker.
const OrderByPK = "id"

// DefaultOrderBy lists tasks oldest first.
var DefaultOrderBy = fop.NewBy(OrderByPK, fop.ASC)
