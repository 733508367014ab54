// File: internal/infra/metrics/metrics.go
// Package metrics holds every Prometheus collector for the service. Each
// area declares its collectors in its own file and enqueues them via
// register(); cmd/app calls MustRegister once before serving /metrics.
package metrics

import "strings"

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
