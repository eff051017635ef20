package org

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Subsystem: "authz",
		Name:      "decisions_total",
		Help:      "Event authorization decisions broken down by role, action and result.",
	}, []string{"role", "action", "result"})

	reassignDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Subsystem: "authz",
		Name:      "reassignments_total",
		Help:      "Owner assignment checks broken down by phase (create, update) and result.",
	}, []string{"phase", "result"})

	edgeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Subsystem: "hierarchy",
		Name:      "edge_mutations_total",
		Help:      "Hierarchy edge mutations broken down by operation (set, remove).",
	}, []string{"op"})
)

func decisionLabel(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}
