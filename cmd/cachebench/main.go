// Command cachebench replays a skewed read-through trace against the
// eviction engines and reports their hit rates.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/venkatsvpr/evictcache"
)

// BenchConfig holds the command line configuration.
type BenchConfig struct {
	Algorithms  string
	Size        int
	Ops         int
	KeySpace    uint64
	Skew        float64
	Seed        int64
	MetricsAddr string
	Hold        time.Duration
	ReportFile  string
}

// BenchResult holds the outcome of one engine's run.
type BenchResult struct {
	Algorithm string        `json:"algorithm"`
	Hits      uint64        `json:"hits"`
	Misses    uint64        `json:"misses"`
	HitRate   float64       `json:"hit_rate"`
	Evictions int           `json:"evictions"`
	Duration  time.Duration `json:"duration_ns"`
	OpsPerSec float64       `json:"ops_per_sec"`
}

func main() {
	config := parseFlags()

	algorithms, err := parseAlgorithms(config.Algorithms)
	if err != nil {
		log.Fatalf("bad -algo: %v", err)
	}

	reg := prometheus.NewRegistry()
	if config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Printf("serving metrics on %s/metrics", config.MetricsAddr)
			if err := http.ListenAndServe(config.MetricsAddr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	results := make([]BenchResult, 0, len(algorithms))
	for _, a := range algorithms {
		result, err := run(config, a, evictcache.NewMetrics(reg, "cachebench", a.String()))
		if err != nil {
			log.Fatalf("%v: %v", a, err)
		}
		log.Printf("%s: hits=%d misses=%d hit_rate=%.4f evictions=%d ops/sec=%.0f",
			result.Algorithm, result.Hits, result.Misses, result.HitRate, result.Evictions, result.OpsPerSec)
		results = append(results, result)
	}

	if config.ReportFile != "" {
		saveReport(config, results)
	}
	if config.MetricsAddr != "" && config.Hold > 0 {
		log.Printf("holding for %v", config.Hold)
		time.Sleep(config.Hold)
	}
}

func parseFlags() BenchConfig {
	config := BenchConfig{}

	flag.StringVar(&config.Algorithms, "algo", "lru,splay", "Comma separated eviction engines to run")
	flag.IntVar(&config.Size, "size", 1024, "Cache capacity")
	flag.IntVar(&config.Ops, "n", 1000000, "Number of lookups to replay")
	flag.Uint64Var(&config.KeySpace, "keyspace", 16384, "Number of distinct keys")
	flag.Float64Var(&config.Skew, "skew", 1.1, "Zipf exponent of the key distribution (> 1)")
	flag.Int64Var(&config.Seed, "seed", 1, "Random seed")
	flag.StringVar(&config.MetricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	flag.DurationVar(&config.Hold, "hold", 0, "Keep serving metrics this long after the run")
	flag.StringVar(&config.ReportFile, "o", "", "Output report file (JSON)")

	flag.Parse()

	return config
}

func parseAlgorithms(list string) ([]evictcache.Algorithm, error) {
	var algorithms []evictcache.Algorithm
	seen := make(map[evictcache.Algorithm]bool)
	for _, name := range strings.Split(list, ",") {
		a, err := evictcache.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		// each engine registers its collectors once
		if !seen[a] {
			seen[a] = true
			algorithms = append(algorithms, a)
		}
	}
	return algorithms, nil
}

// run replays the same trace for every engine: a lookup, and an insert on
// miss.
func run(config BenchConfig, a evictcache.Algorithm, m *evictcache.Metrics) (BenchResult, error) {
	if config.Skew <= 1 || config.KeySpace == 0 {
		return BenchResult{}, fmt.Errorf("need -skew > 1 and -keyspace > 0: %w", evictcache.ErrConfig)
	}

	evictions := 0
	c, err := evictcache.New[uint64, uint64](config.Size,
		evictcache.WithAlgorithm[uint64, uint64](a),
		evictcache.WithMetrics[uint64, uint64](m),
		evictcache.WithEvict(func(uint64, uint64) { evictions++ }))
	if err != nil {
		return BenchResult{}, err
	}

	zipf := rand.NewZipf(rand.New(rand.NewSource(config.Seed)), config.Skew, 1, config.KeySpace-1)
	start := time.Now()
	for i := 0; i < config.Ops; i++ {
		key := zipf.Uint64()
		_, ok, err := c.Find(key)
		if err != nil {
			return BenchResult{}, err
		}
		if !ok {
			if _, err := c.Insert(key, key); err != nil {
				return BenchResult{}, err
			}
		}
	}
	duration := time.Since(start)

	result := BenchResult{
		Algorithm: a.String(),
		Hits:      c.Hits(),
		Misses:    c.Misses(),
		Evictions: evictions,
		Duration:  duration,
		OpsPerSec: float64(config.Ops) / duration.Seconds(),
	}
	if rate, err := c.HitRate(); err == nil {
		result.HitRate = rate
	}
	return result, nil
}

func saveReport(config BenchConfig, results []BenchResult) {
	report := map[string]interface{}{
		"config": map[string]interface{}{
			"size":     config.Size,
			"ops":      config.Ops,
			"keyspace": config.KeySpace,
			"skew":     config.Skew,
			"seed":     config.Seed,
		},
		"results":   results,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	data, _ := json.MarshalIndent(report, "", "  ")
	if err := os.WriteFile(config.ReportFile, data, 0644); err != nil {
		log.Printf("Failed to write report: %v", err)
	} else {
		log.Printf("Report saved to: %s", config.ReportFile)
	}
}
