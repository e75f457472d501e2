package tasksrepobridge

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jrazmi/todolist/bridge/scaffolding/errs"
	"github.com/jrazmi/todolist/core/scaffolding/fop"
	"github.com/jrazmi/todolist/infrastructure/web"
)

// QueryParams holds the raw list query values.
type QueryParams struct {
	Skip  string
	Limit string
}

func parseQueryParams(r *http.Request) QueryParams {
	return QueryParams{
		Skip:  web.QueryParam(r, "skip"),
		Limit: web.QueryParam(r, "limit"),
	}
}

func parsePage(qp QueryParams) (fop.PageOffset, *errs.Error) {
	page, err := fop.ParsePageOffset(qp.Skip, qp.Limit)
	if err != nil {
		var pe *fop.PageError
		if errors.As(err, &pe) {
			return fop.PageOffset{}, errs.NewFieldErrors(pe.Field, pe.Err)
		}
		return fop.PageOffset{}, errs.New(errs.Unprocessable, err)
	}

	return page, nil
}

func parseTaskID(r *http.Request) (int64, *errs.Error) {
	raw := web.Param(r, "task_id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewFieldErrors("task_id", errors.New("value is not a valid integer"))
	}

	return id, nil
}
