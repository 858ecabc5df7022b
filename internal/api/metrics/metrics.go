// Package metrics defines and registers all custom Prometheus metrics for the
// taskloop API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskloop"

// TodosCreatedTotal counts newly created todos.
// Label:
//   - priority: "low", "medium", or "high"
var TodosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created, by priority.",
	},
	[]string{"priority"},
)

// TodosToggledTotal counts completion toggles.
// Label:
//   - completed: "true" when the toggle marked the todo done, "false" when it reopened it
var TodosToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_toggled_total",
		Help:      "Total number of completion toggles, by resulting state.",
	},
	[]string{"completed"},
)

// CategoriesDeletedTotal counts category deletions (each of which may clear
// references on any number of todos).
var CategoriesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "categories_deleted_total",
		Help:      "Total number of categories deleted.",
	},
)

// CategoryTodosClearedTotal counts todo references cleared by category
// deletions.
var CategoryTodosClearedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_todos_cleared_total",
		Help:      "Total number of todos detached from a category by its deletion.",
	},
)
