package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	mathrand "math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goCSRF "github.com/dualtoken/goCSRF"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "csrf-loadtest: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	var (
		backend     string
		idStrategy  string
		concurrency int
		ops         int
		pairs       int
		expiresIn   time.Duration
	)

	flagSet := pflag.NewFlagSet("csrf-loadtest", pflag.ContinueOnError)
	flagSet.StringVar(&backend, "backend", "jwt", "token backend: jwt or hmac")
	flagSet.StringVar(&idStrategy, "id-strategy", "uuid", "identifier strategy: uuid or simple")
	flagSet.IntVarP(&concurrency, "concurrency", "c", 256, "number of concurrent workers")
	flagSet.IntVarP(&ops, "ops", "n", 200000, "operations per phase (create + verify)")
	flagSet.IntVar(&pairs, "pairs", 10000, "pre-issued pairs sampled by the verify phase")
	flagSet.DurationVar(&expiresIn, "expires-in", time.Hour, "token lifetime")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if concurrency <= 0 || ops <= 0 || pairs <= 0 {
		return errors.New("concurrency, ops, and pairs must be > 0")
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}

	engine, err := goCSRF.NewEngine(goCSRF.Config{
		Secret:     secret,
		ExpiresIn:  expiresIn,
		Backend:    goCSRF.Backend(backend),
		IDStrategy: goCSRF.IDStrategy(idStrategy),
	})
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	fmt.Printf("backend=%s ids=%s concurrency=%d ops=%d\n", engine.Backend(), idStrategy, concurrency, ops)

	fmt.Printf("issuing %d pairs...\n", pairs)
	seeded := make([]goCSRF.TokenPair, pairs)
	startSeed := time.Now()
	for i := range seeded {
		p, err := engine.Create(nil)
		if err != nil {
			return fmt.Errorf("seed create: %w", err)
		}
		seeded[i] = p
	}
	fmt.Printf("issued in %s\n", time.Since(startSeed).Round(time.Millisecond))

	createStats := runPhase(ops, concurrency, 7919, func(_ *mathrand.Rand) error {
		_, err := engine.Create(nil)
		return err
	})
	verifyStats := runPhase(ops, concurrency, 6151, func(r *mathrand.Rand) error {
		p := seeded[r.Intn(len(seeded))]
		_, err := engine.Verify(p.Header, p.Cookie)
		return err
	})

	fmt.Println("---- results ----")
	printStats("create", createStats)
	printStats("verify", verifyStats)
	return nil
}

func runPhase(ops, concurrency int, seedStep int64, op func(r *mathrand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := mathrand.New(mathrand.NewSource(time.Now().UnixNano() + int64(worker)*seedStep))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
