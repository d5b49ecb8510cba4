package aggregators

import (
	"slices"
	"sync"

	"cdn-insights/internal/models"
	"cdn-insights/internal/streams"
)

// minPartitionedEntries is the batch size below which fan-out costs more than it saves.
const minPartitionedEntries = 4096

type indexedEntry struct {
	index int
	entry *models.LogEntry
}

type partitionResult struct {
	endpoints *EndpointAccumulators
	firstSeen map[string]int
}

type partitionedAggregator struct {
	sequential *aggregator
	partitions int
}

// NewPartitionedAggregator returns an Aggregator that spreads large batches over partitions
// workers keyed by URL. Every URL is accumulated by exactly one worker in input order, so the
// result equals the sequential one, endpoint order included.
func NewPartitionedAggregator(maxSamplesPerSeries, partitions int) Aggregator {
	return &partitionedAggregator{
		sequential: &aggregator{maxSamplesPerSeries: maxSamplesPerSeries},
		partitions: partitions,
	}
}

func (a *partitionedAggregator) Aggregate(entries []*models.LogEntry) *EndpointAccumulators {
	if a.partitions <= 1 || len(entries) < minPartitionedEntries {
		return a.sequential.Aggregate(entries)
	}
	return a.aggregatePartitioned(entries)
}

func (a *partitionedAggregator) aggregatePartitioned(entries []*models.LogEntry) *EndpointAccumulators {
	queue := streams.NewPartitionedQueue[indexedEntry]("aggregation", a.partitions, streams.DefaultBuffer)
	results := make([]partitionResult, queue.PartitionCount())

	var wg sync.WaitGroup
	for i := range queue.PartitionCount() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = a.consume(queue.Partition(i))
		}()
	}

	for i, entry := range entries {
		// the batch validator rejects null records; this only guards direct callers
		if entry == nil {
			continue
		}
		queue.Publish(entry.URL, indexedEntry{index: i, entry: entry})
	}
	queue.Close()
	wg.Wait()

	return mergePartitions(results)
}

func (a *partitionedAggregator) consume(ch <-chan indexedEntry) partitionResult {
	result := partitionResult{
		endpoints: NewOrderedMap[string, *EndpointAccumulator](),
		firstSeen: make(map[string]int),
	}
	for item := range ch {
		url := item.entry.URL
		acc := result.endpoints.Upsert(url, func() *EndpointAccumulator {
			result.firstSeen[url] = item.index
			return newEndpointAccumulator(url, a.sequential.maxSamplesPerSeries)
		})
		a.sequential.accumulate(acc, item.entry)
	}
	return result
}

// mergePartitions rebuilds the global first-seen order from the per-partition results.
func mergePartitions(results []partitionResult) *EndpointAccumulators {
	type firstSeenAccumulator struct {
		index int
		acc   *EndpointAccumulator
	}

	var all []firstSeenAccumulator
	for _, result := range results {
		for _, url := range result.endpoints.Keys() {
			acc, _ := result.endpoints.Get(url)
			all = append(all, firstSeenAccumulator{index: result.firstSeen[url], acc: acc})
		}
	}
	slices.SortFunc(all, func(x, y firstSeenAccumulator) int {
		return x.index - y.index
	})

	endpoints := NewOrderedMap[string, *EndpointAccumulator]()
	for _, item := range all {
		endpoints.Upsert(item.acc.URL, func() *EndpointAccumulator { return item.acc })
	}
	return endpoints
}
