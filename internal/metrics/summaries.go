package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameSummaries       = "summaries_total"
	NameSummarizedTodos = "summarized_todos_total"
	NameNotifications   = "notifications_total"
)

var Summaries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameSummaries,
		Help:      "Summarization requests by scope and result",
		Namespace: Namespace,
	},
	[]string{LabelScope, LabelResult},
)

var SummarizedTodos = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameSummarizedTodos,
		Help:      "Todos included in successful summaries",
		Namespace: Namespace,
	},
)

var Notifications = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameNotifications,
		Help:      "Chat notifications by result",
		Namespace: Namespace,
	},
	[]string{LabelResult},
)
