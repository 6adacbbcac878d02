// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/todolist/internal/platform/respond"
)

const readinessCheckTimeout = 2 * time.Second

// HealthDependencies are the probes behind /ready. A nil probe is skipped.
type HealthDependencies struct {
	CheckDatabase func(ctx context.Context) error
	CheckCache    func(ctx context.Context) error
}

type probe struct {
	name  string
	check func(context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type readinessReport struct {
	Status string        `json:"status"`
	Checks []checkResult `json:"checks"`
}

/*
NewHealthHandlers returns the liveness and readiness handlers.

Liveness always answers 200. Readiness runs every configured probe and answers
503 "degraded" when any of them fails.
*/
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	var probes []probe
	if deps.CheckDatabase != nil {
		probes = append(probes, probe{"postgres", deps.CheckDatabase})
	}
	if deps.CheckCache != nil {
		probes = append(probes, probe{"redis", deps.CheckCache})
	}

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		report := runProbes(request.Context(), probes, logger)

		status := http.StatusOK
		if report.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		respond.Data(writer, status, report)
	}

	return liveness, readiness
}

func runProbes(ctx context.Context, probes []probe, logger *slog.Logger) readinessReport {
	report := readinessReport{Status: "ready", Checks: make([]checkResult, 0, len(probes))}

	for _, p := range probes {
		checkCtx, cancel := context.WithTimeout(ctx, readinessCheckTimeout)
		err := p.check(checkCtx)
		cancel()

		if err == nil {
			report.Checks = append(report.Checks, checkResult{Name: p.name, IsOK: true})
			continue
		}

		report.Status = "degraded"
		report.Checks = append(report.Checks, checkResult{Name: p.name, Error: err.Error()})
		logger.ErrorContext(ctx, "readiness_check_failed",
			slog.String("dependency", p.name),
			slog.Any("error", err),
		)
	}
	return report
}
