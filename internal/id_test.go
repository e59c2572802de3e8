package internal

import (
	"sync"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if id == "" {
		t.Fatal("expected a non-empty ID")
	}
}

func TestGenerateIDConcurrency(t *testing.T) {
	const numGoroutines = 100
	const idsPerGoroutine = 10

	idChan := make(chan string, numGoroutines*idsPerGoroutine)
	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- GenerateID()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	idSet := make(map[string]bool)
	for id := range idChan {
		if idSet[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		idSet[id] = true
	}

	if len(idSet) != numGoroutines*idsPerGoroutine {
		t.Errorf("generated %d unique IDs, want %d", len(idSet), numGoroutines*idsPerGoroutine)
	}
}
