// Package stats counts commands, events and queries, and optionally submits them to InfluxDB.
package stats

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/starshine-sys/sentinel/common"
)

// Client is a metrics client. All methods are safe to call on a nil *Client.
type Client struct {
	// Client is nil if InfluxDB isn't configured.
	Client api.WriteAPI

	mu       sync.Mutex
	queries  uint32
	cmds     uint32
	events   map[string]uint32
	commands map[string]uint32

	totals Totals
}

// Totals are the lifetime counts.
type Totals struct {
	Commands uint64 `json:"commands"`
	Events   uint64 `json:"events"`
	Queries  uint64 `json:"queries"`
}

// New creates a new client. If url is empty, metrics are only counted locally.
func New(url, token, organization, bucket string) *Client {
	c := &Client{
		events:   make(map[string]uint32),
		commands: make(map[string]uint32),
	}

	if url != "" {
		c.Client = influxdb2.NewClientWithOptions(url, token,
			influxdb2.DefaultOptions().SetBatchSize(20)).WriteAPI(organization, bucket)
	}

	return c
}

// EventHandler handles Arikawa events
func (c *Client) EventHandler(ev interface{}) {
	t := reflect.TypeOf(ev)
	if t == nil {
		return
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c.RegisterEvent(t.Name())
}

// RegisterEvent registers an event name. Separate from EventHandler to allow us to log our own, custom events.
func (c *Client) RegisterEvent(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.events[name]++
	c.totals.Events++
	c.mu.Unlock()
}

// IncQuery increments the query count by one
func (c *Client) IncQuery() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.queries++
	c.totals.Queries++
	c.mu.Unlock()
}

// IncCommand increments the command count by one
func (c *Client) IncCommand(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.cmds++
	c.commands[name]++
	c.totals.Commands++
	c.mu.Unlock()
}

// Totals returns the lifetime counts.
func (c *Client) Totals() Totals {
	if c == nil {
		return Totals{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals
}

// Run submits metrics every minute until ctx is cancelled. It returns immediately if InfluxDB isn't configured.
func (c *Client) Run(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go c.submit()
		case <-ctx.Done():
			c.Client.Flush()
			return
		}
	}
}

func (c *Client) submit() {
	common.Log.Debug("Submitting metrics to InfluxDB")

	var cmds, queries, totalEvents uint32

	c.mu.Lock()
	queries, c.queries = c.queries, 0
	cmds, c.cmds = c.cmds, 0

	events := make(map[string]interface{}, len(c.events))
	for k, v := range c.events {
		totalEvents += v
		events[k] = v
		c.events[k] = 0
	}
	commands := make(map[string]interface{}, len(c.commands))
	for k, v := range c.commands {
		commands[k] = v
		c.commands[k] = 0
	}
	c.mu.Unlock()

	if len(events) > 0 {
		c.Client.WritePoint(influxdb2.NewPoint("events", nil, events, time.Now()))
	}
	if len(commands) > 0 {
		c.Client.WritePoint(influxdb2.NewPoint("commands", nil, commands, time.Now()))
	}

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	data := map[string]interface{}{
		"queries":     queries,
		"events":      totalEvents,
		"commands":    cmds,
		"alloc":       stats.Alloc,
		"sys":         stats.Sys,
		"total_alloc": stats.TotalAlloc,
		"goroutines":  runtime.NumGoroutine(),
	}

	sysMem, err := mem.VirtualMemory()
	if err != nil {
		common.Log.Errorf("Error getting system memory: %v", err)
	} else {
		data["total_sys"] = sysMem.Used
		data["total_sys_percent"] = sysMem.UsedPercent
	}

	cpuData, err := cpu.Percent(time.Second, true)
	if err != nil {
		common.Log.Errorf("Error getting cpu info: %v", err)
	} else {
		for i, d := range cpuData {
			data[fmt.Sprintf("cpu_%d", i)] = d
		}
	}

	c.Client.WritePoint(influxdb2.NewPoint("statistics", nil, data, time.Now()))
}
