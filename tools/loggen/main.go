package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var levels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

func main() {
	path := flag.String("path", "logs/app.log", "Output path for the generated log file")
	start := flag.String("start", "2024-01-01", "First date (YYYY-MM-DD)")
	days := flag.Int("days", 7, "Number of consecutive dates to generate")
	linesPerDay := flag.Int("lines", 10000, "Lines per date")
	lps := flag.Int("lps", 0, "Lines per second limit (0 = unthrottled)")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("invalid -start date: %v", err)
	}

	log.Printf("Generating %d days x %d lines into %s", *days, *linesPerDay, *path)

	f, err := os.Create(*path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	rng := rand.New(rand.NewSource(*seed))
	ctx := context.Background()

	var limiter *rate.Limiter
	if *lps > 0 {
		limiter = rate.NewLimiter(rate.Limit(*lps), 100) // Allow bursts up to 100
	}

	began := time.Now()
	total := 0
	for d := 0; d < *days; d++ {
		day := startDate.AddDate(0, 0, d)
		step := 86400.0 / float64(*linesPerDay)
		for i := 0; i < *linesPerDay; i++ {
			if limiter != nil {
				limiter.Wait(ctx)
			}
			ts := day.Add(time.Duration(float64(i) * step * float64(time.Second)))
			level := levels[rng.Intn(len(levels))]
			line := fmt.Sprintf("%sT%s.%04d - %s - request %s handled\n",
				day.Format("2006-01-02"), ts.Format("15:04:05"), rng.Intn(10000), level, uuid.NewString())
			if _, err := w.WriteString(line); err != nil {
				log.Fatalf("write failed: %v", err)
			}
			total++
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flush failed: %v", err)
	}

	log.Println("Generation finished.")
	log.Printf("Total lines: %d", total)
	log.Printf("Elapsed: %s", time.Since(began))
}
