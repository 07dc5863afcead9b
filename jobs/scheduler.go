// Package jobs, arka planda periyodik çalışan bakım görevlerini yönetir.
//
// Her görev bir cron ifadesiyle kaydedilir. Boş ifade görevi kapatır.
// Görevler birbirini beklemez; aynı görevin önceki çalışması bitmemişse
// yeni tetikleme atlanır.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout, tek bir görev çalışmasının üst sınırı.
const jobTimeout = 5 * time.Minute

// Func, zamanlanmış görevin gövdesi. Dönen sayı log'a yazılır (silinen kayıt vb.).
type Func func(ctx context.Context) (int64, error)

// Scheduler, cron tabanlı görev zamanlayıcı.
type Scheduler struct {
	cron  *cron.Cron
	names []string
}

// NewScheduler, boş bir zamanlayıcı oluşturur. Start çağrılana kadar görev çalışmaz.
func NewScheduler() *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
	}
}

// Register, görevi verilen cron ifadesiyle kaydeder.
// spec boşsa görev kapalıdır ve false döner.
func (s *Scheduler) Register(name, spec string, fn Func) (bool, error) {
	if spec == "" {
		log.Printf("[jobs] %s disabled", name)
		return false, nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		run(name, fn)
	})
	if err != nil {
		return false, fmt.Errorf("register job %s (%q): %w", name, spec, err)
	}

	s.names = append(s.names, name)
	log.Printf("[jobs] %s scheduled (%s)", name, spec)
	return true, nil
}

// Jobs, kayıtlı görevlerin isimlerini döner.
func (s *Scheduler) Jobs() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Start, zamanlayıcıyı arka planda başlatır.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop, yeni tetiklemeleri durdurur ve çalışan görevlerin bitmesini ctx süresince bekler.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Println("[jobs] stop timed out, running jobs abandoned")
	}
}

func run(name string, fn Func) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := fn(ctx)
	if err != nil {
		log.Printf("[jobs] %s failed after %s: %v", name, time.Since(start).Round(time.Millisecond), err)
		return
	}
	if n > 0 {
		log.Printf("[jobs] %s done (%d affected, %s)", name, n, time.Since(start).Round(time.Millisecond))
	}
}
