package utils

import (
	"sync/atomic"
	"testing"
)

func TestStringSetNoDuplicates(t *testing.T) {
	s := NewStringSet()

	if !s.Add("Rent_High") {
		t.Error("first Add should return true")
	}
	if s.Add("Rent_High") {
		t.Error("second Add of same value should return false")
	}
	if !s.Contains("Rent_High") {
		t.Error("Contains should find an added value")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestStringSetConcurrency(t *testing.T) {
	s := NewStringSet()
	var added int64

	pool := NewWorkerPool(10)
	for i := 0; i < 100; i++ {
		pool.Submit(func() {
			if s.Add("Pool") {
				atomic.AddInt64(&added, 1)
			}
		})
	}
	pool.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	var done int64

	for i := 0; i < 200; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&done, 1)
		})
	}
	pool.Wait()

	if done != 200 {
		t.Errorf("expected 200 completed jobs, got %d", done)
	}
}

func TestWorkerPoolClampsWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.Workers() != 1 {
		t.Errorf("worker count: got %d, want clamp to 1", pool.Workers())
	}
}
