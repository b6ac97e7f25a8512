// simulate hammers a running api-server with concurrent availability reads
// and booking attempts. Workers deliberately fight over a small set of
// slots so the report shows exactly one winner per slot and conflicts for
// everyone else.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	BookingRatio float64
	DaysAhead    int
}

type OperationMetrics struct {
	Total    int64
	Success  int64
	Conflict int64
	Error    int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case success:
		atomic.AddInt64(&om.Success, 1)
	case conflict:
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))

	idx := func(pct int) time.Duration {
		i := len(latencies) * pct / 100
		if i >= len(latencies) {
			i = len(latencies) - 1
		}
		return latencies[i]
	}
	return avg, idx(50), idx(95)
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	booking OperationMetrics
	reads   OperationMetrics

	// every grid start time in a 9-17 clinic for a 30-minute visit
	startTimes []string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadSimConfig()
	log.Printf("config: base_url=%s duration=%s workers=%d booking_ratio=%.2f",
		cfg.APIBaseURL, cfg.Duration, cfg.Workers, cfg.BookingRatio)

	sim := &Simulator{
		config:     cfg,
		client:     &http.Client{Timeout: 10 * time.Second},
		startTimes: gridStartTimes(9, 17),
	}

	sim.Run()
	sim.PrintReport()
}

func loadSimConfig() SimConfig {
	return SimConfig{
		APIBaseURL:   getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:     getDuration("SIM_DURATION", 15*time.Second),
		Workers:      getInt("SIM_WORKERS", 10),
		BookingRatio: getFloat("SIM_BOOKING_RATIO", 0.6),
		DaysAhead:    getInt("SIM_DAYS_AHEAD", 3),
	}
}

func (s *Simulator) Run() {
	deadline := time.Now().Add(s.config.Duration)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)))
			for time.Now().Before(deadline) {
				if rng.Float64() < s.config.BookingRatio {
					s.attemptBooking(rng)
				} else {
					s.readAvailability(rng)
				}
			}
		}(i)
	}
	wg.Wait()
}

func (s *Simulator) attemptBooking(rng *rand.Rand) {
	date := time.Now().AddDate(0, 0, 1+rng.Intn(s.config.DaysAhead)).Format("2006-01-02")
	start := s.startTimes[rng.Intn(len(s.startTimes))]

	payload := map[string]any{
		"appointment_type": "consultation",
		"date":             date,
		"start_time":       start,
		"patient": map[string]string{
			"name":  gofakeit.Name(),
			"email": gofakeit.Email(),
			"phone": gofakeit.Phone(),
		},
		"reason": gofakeit.SentenceSimple(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.booking.Record(0, false, false)
		return
	}

	started := time.Now()
	resp, err := s.client.Post(s.config.APIBaseURL+"/api/calendly/book", "application/json", bytes.NewReader(body))
	latency := time.Since(started)
	if err != nil {
		s.booking.Record(latency, false, false)
		return
	}
	defer drain(resp)

	s.booking.Record(latency,
		resp.StatusCode == http.StatusCreated,
		resp.StatusCode == http.StatusConflict)
}

func (s *Simulator) readAvailability(rng *rand.Rand) {
	date := time.Now().AddDate(0, 0, rng.Intn(s.config.DaysAhead+1)).Format("2006-01-02")

	started := time.Now()
	resp, err := s.client.Get(s.config.APIBaseURL + "/api/calendly/availability?date=" + date)
	latency := time.Since(started)
	if err != nil {
		s.reads.Record(latency, false, false)
		return
	}
	defer drain(resp)

	s.reads.Record(latency, resp.StatusCode == http.StatusOK, false)
}

func (s *Simulator) PrintReport() {
	fmt.Println()
	fmt.Println("=== Simulation Report ===")

	printOp := func(name string, om *OperationMetrics) {
		avg, p50, p95 := om.Stats()
		fmt.Printf("%-14s total=%d success=%d conflict=%d error=%d avg=%s p50=%s p95=%s\n",
			name, om.Total, om.Success, om.Conflict, om.Error, avg, p50, p95)
	}
	printOp("bookings", &s.booking)
	printOp("availability", &s.reads)

	slots := int64(len(s.startTimes) * s.config.DaysAhead)
	fmt.Printf("\ndistinct bookable slots in window: %d\n", slots)
	if s.booking.Success > slots {
		fmt.Println("WARNING: more successful bookings than slots, double booking happened")
	} else {
		fmt.Println("no double booking observed")
	}
}

func gridStartTimes(openHour, closeHour int) []string {
	var times []string
	for minute := openHour * 60; minute+30 <= closeHour*60; minute += 30 {
		times = append(times, fmt.Sprintf("%02d:%02d", minute/60, minute%60))
	}
	return times
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
