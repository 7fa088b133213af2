//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Hammers a single pool with concurrent joins to exercise the optimistic
// write path: exactly capacity joins should succeed, the rest must get
// pool_full, and nothing should be lost or duplicated.
func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	workers := flag.Int("workers", 20, "concurrent join attempts")
	flag.Parse()

	pool := createPool(*base)
	fmt.Printf("Created pool %s, firing %d concurrent joins\n", pool, *workers)

	var ok, full, other int64
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			body, _ := json.Marshal(map[string]string{
				"rider_id": fmt.Sprintf("load-rider-%d", n),
				"name":     fmt.Sprintf("Load Rider %d", n),
			})
			resp, err := http.Post(
				fmt.Sprintf("%s/v1/pools/%s/join", *base, pool),
				"application/json", bytes.NewReader(body))
			if err != nil {
				atomic.AddInt64(&other, 1)
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
				atomic.AddInt64(&ok, 1)
			case http.StatusConflict:
				atomic.AddInt64(&full, 1)
			default:
				atomic.AddInt64(&other, 1)
			}
		}(i)
	}

	wg.Wait()
	fmt.Printf("joined=%d full=%d other=%d in %s\n", ok, full, other, time.Since(start))
	if ok > 4 {
		log.Fatalf("FAIL: %d joins succeeded on a 4-seat pool", ok)
	}
}

func createPool(base string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"destination":     "Loadtest Terminal",
		"pickup_location": "Loadtest Origin",
		"departure_time":  time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	resp, err := http.Post(base+"/v1/pools", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("create pool: %v", err)
	}
	defer resp.Body.Close()

	var env struct {
		Data struct {
			ID string `json:"pool_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Fatalf("decode create response: %v", err)
	}
	return env.Data.ID
}
