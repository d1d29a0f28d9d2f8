package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brianbruff/Log4YM/internal/adif"
)

// fakeInserter records batch sizes and can fail a specific batch.
type fakeInserter struct {
	batches  []int
	failAt   int // 1-based batch index to fail at; 0 means never
	failWith error
}

func (f *fakeInserter) InsertMany(_ context.Context, docs []adif.Record) (int, error) {
	f.batches = append(f.batches, len(docs))
	if f.failAt != 0 && len(f.batches) == f.failAt {
		return 0, f.failWith
	}
	return len(docs), nil
}

func makeRecords(n int) []adif.Record {
	recs := make([]adif.Record, n)
	for i := range recs {
		recs[i] = adif.Record{"call": fmt.Sprintf("EI%dKA", i)}
	}
	return recs
}

func TestLoader_BatchPartitioning(t *testing.T) {
	fake := &fakeInserter{}
	var progress [][2]int
	loader := NewLoader(fake, 100, func(inserted, total int) {
		progress = append(progress, [2]int{inserted, total})
	})

	inserted, err := loader.Load(context.Background(), makeRecords(250))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 250 {
		t.Errorf("inserted = %d, want 250", inserted)
	}
	if len(fake.batches) != 3 || fake.batches[0] != 100 || fake.batches[1] != 100 || fake.batches[2] != 50 {
		t.Errorf("batches = %v, want [100 100 50]", fake.batches)
	}
	want := [][2]int{{100, 250}, {200, 250}, {250, 250}}
	if len(progress) != len(want) {
		t.Fatalf("progress = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress[%d] = %v, want %v", i, progress[i], want[i])
		}
	}
}

func TestLoader_ExactMultiple(t *testing.T) {
	fake := &fakeInserter{}
	loader := NewLoader(fake, 100, nil)

	inserted, err := loader.Load(context.Background(), makeRecords(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 200 {
		t.Errorf("inserted = %d, want 200", inserted)
	}
	if len(fake.batches) != 2 {
		t.Errorf("batches = %v, want two batches", fake.batches)
	}
}

func TestLoader_EmptyInputNoWrites(t *testing.T) {
	fake := &fakeInserter{}
	loader := NewLoader(fake, 100, nil)

	inserted, err := loader.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
	if len(fake.batches) != 0 {
		t.Errorf("expected no insert calls, got %v", fake.batches)
	}
}

func TestLoader_FirstFailureAborts(t *testing.T) {
	boom := errors.New("write conflict")
	fake := &fakeInserter{failAt: 2, failWith: boom}
	loader := NewLoader(fake, 100, nil)

	inserted, err := loader.Load(context.Background(), makeRecords(250))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	// The first batch stays durable; the run stops before the third.
	if inserted != 100 {
		t.Errorf("inserted = %d, want 100", inserted)
	}
	if len(fake.batches) != 2 {
		t.Errorf("batches = %v, want two attempts", fake.batches)
	}
}

func TestNewLoader_DefaultBatchSize(t *testing.T) {
	fake := &fakeInserter{}
	loader := NewLoader(fake, 0, nil)

	if _, err := loader.Load(context.Background(), makeRecords(150)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.batches) != 2 || fake.batches[0] != DefaultBatchSize {
		t.Errorf("batches = %v, want [%d 50]", fake.batches, DefaultBatchSize)
	}
}
