// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is a point-in-time view of connection usage.
type PoolStats struct {
	Total    int32
	Idle     int32
	Acquired int32
}

// StatsOf reads the current statistics of pool.
func StatsOf(pool *pgxpool.Pool) func() PoolStats {
	return func() PoolStats {
		stat := pool.Stat()
		return PoolStats{
			Total:    stat.TotalConns(),
			Idle:     stat.IdleConns(),
			Acquired: stat.AcquiredConns(),
		}
	}
}

// RegisterStats exposes pool usage as todolist_db_connections{state}.
// The gauges are sampled on every scrape.
func RegisterStats(registerer prometheus.Registerer, stats func() PoolStats) error {
	for state, read := range map[string]func(PoolStats) int32{
		"total":    func(s PoolStats) int32 { return s.Total },
		"idle":     func(s PoolStats) int32 { return s.Idle },
		"acquired": func(s PoolStats) int32 { return s.Acquired },
	} {
		gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "todolist",
			Name:        "db_connections",
			Help:        "PostgreSQL pool connections by state",
			ConstLabels: prometheus.Labels{"state": state},
		}, func() float64 { return float64(read(stats())) })

		if err := registerer.Register(gauge); err != nil {
			return err
		}
	}
	return nil
}
