// Runtime counters for the firmware core
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package metrics collects cheap atomic counters and gauges for the
// control loop. There is no scrape endpoint on the board; snapshots are
// rendered in Prometheus text format and written to the log on demand.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Counter is a monotonically increasing value.
type Counter struct {
	v uint64
}

// Inc adds one.
func (c *Counter) Inc() {
	atomic.AddUint64(&c.v, 1)
}

// Add adds n.
func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.v, n)
}

// Value returns the current count.
func (c *Counter) Value() uint64 {
	return atomic.LoadUint64(&c.v)
}

// Gauge is a value that can move in both directions.
type Gauge struct {
	v int64
}

// Set replaces the value.
func (g *Gauge) Set(v int64) {
	atomic.StoreInt64(&g.v, v)
}

// Value returns the current value.
func (g *Gauge) Value() int64 {
	return atomic.LoadInt64(&g.v)
}

// Registry holds named metrics for one process.
type Registry struct {
	mu       sync.Mutex
	counters map[string]*Counter
	gauges   map[string]*Gauge
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*Counter),
		gauges:   make(map[string]*Gauge),
	}
}

// Counter returns the named counter, creating it on first use.
func (r *Registry) Counter(name string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	if !ok {
		c = &Counter{}
		r.counters[name] = c
	}
	return c
}

// Gauge returns the named gauge, creating it on first use.
func (r *Registry) Gauge(name string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gauges[name]
	if !ok {
		g = &Gauge{}
		r.gauges[name] = g
	}
	return g
}

// Render returns every metric in Prometheus text format, sorted by
// name.
func (r *Registry) Render() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.counters)+len(r.gauges))
	for name := range r.counters {
		names = append(names, name)
	}
	for name := range r.gauges {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		if c, ok := r.counters[name]; ok {
			fmt.Fprintf(&sb, "# TYPE %s counter\n%s %d\n", name, name, c.Value())
		} else {
			fmt.Fprintf(&sb, "# TYPE %s gauge\n%s %d\n", name, name, r.gauges[name].Value())
		}
	}
	return sb.String()
}
