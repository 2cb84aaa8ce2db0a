package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "todo_summary"

const (
	LabelResult = "result"
	LabelScope  = "scope"

	ResultSuccess = "success"
	ResultFailure = "failure"

	ScopeSingle = "single"
	ScopeAll    = "all"
)

func Handler() http.Handler {
	return promhttp.Handler()
}
