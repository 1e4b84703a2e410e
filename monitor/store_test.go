package monitor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nunet/cudamon/models"
)

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore()

	snapshot := store.Load()
	require.NotNil(t, snapshot)
	assert.Zero(t, snapshot.Len())
	assert.Empty(t, store.Records())

	select {
	case <-store.Published():
		t.Fatal("published closed before the first snapshot")
	default:
	}
}

func TestStorePublish(t *testing.T) {
	store := NewStore()
	snapshot := &models.Snapshot{Cycle: 1, Records: []models.DeviceRecord{{Name: "A"}}}

	store.Publish(snapshot)

	assert.Same(t, snapshot, store.Load())
	<-store.Published()

	records := store.Records()
	records[0].Name = "changed"
	assert.Equal(t, "A", store.Load().Records[0].Name, "Records returns a copy")

	// a second publish must not close the channel again
	store.Publish(nil)
	assert.NotNil(t, store.Load())
	assert.Zero(t, store.Load().Len())
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore()
	const cycles = 200

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= cycles; i++ {
			records := make([]models.DeviceRecord, i%4)
			for j := range records {
				records[j] = models.DeviceRecord{ComputeIndex: j, Name: "gpu"}
			}
			store.Publish(&models.Snapshot{Cycle: uint64(i), Records: records})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for i := 0; i < cycles; i++ {
				snapshot := store.Load()
				// every snapshot is internally consistent and cycles only advance
				assert.Equal(t, int(snapshot.Cycle%4), snapshot.Len())
				assert.GreaterOrEqual(t, snapshot.Cycle, last)
				last = snapshot.Cycle
				for j, record := range snapshot.Records {
					assert.Equal(t, j, record.ComputeIndex)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(cycles), store.Load().Cycle)
}
