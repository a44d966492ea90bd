package syncutil

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBarrierReleasesAllParticipantsTogether(t *testing.T) {
	const n = 8
	const phases = 5
	b := NewBarrier(n)

	var wg sync.WaitGroup
	var counter int64
	observed := make([][]int64, n)

	for i := 0; i < n; i++ {
		i := i
		observed[i] = make([]int64, phases)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := 0; p < phases; p++ {
				atomic.AddInt64(&counter, 1)
				b.Wait()
				observed[i][p] = atomic.LoadInt64(&counter)
			}
		}()
	}
	wg.Wait()

	for p := 0; p < phases; p++ {
		want := observed[0][p]
		for i := 1; i < n; i++ {
			if observed[i][p] != want {
				t.Errorf("phase %d: participant %d observed counter %d, want %d (all participants should see the same post-barrier count)", p, i, observed[i][p], want)
			}
		}
		if want != int64((p+1)*n) {
			t.Errorf("phase %d: counter = %d, want %d", p, want, (p+1)*n)
		}
	}
}

func TestBarrierAbortReleasesWaiters(t *testing.T) {
	b := NewBarrier(3)
	done := make(chan struct{}, 2)

	go func() { b.Wait(); done <- struct{}{} }()
	go func() { b.Wait(); done <- struct{}{} }()

	time.Sleep(20 * time.Millisecond)
	b.Abort()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Abort did not release blocked waiters in time")
		}
	}
}
