package streams

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
)

// PartitionedQueue routes messages to a fixed set of buffered channels by key.
// Messages with the same key always land on the same partition, in publish order.
type PartitionedQueue[T any] struct {
	name       string
	partitions []chan T
}

const (
	DefaultNumPartitions = 8
	DefaultBuffer        = 1024
)

// NewPartitionedQueue creates a queue with numPartitions channels of the given buffer size.
// name labels the queue's metrics.
func NewPartitionedQueue[T any](name string, numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions < 1 {
		numPartitions = 1
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	metricOpenPartitions.WithLabelValues(name).Add(float64(numPartitions))
	return &PartitionedQueue[T]{name: name, partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Partition returns the receive side of partition i for its single consumer.
func (queue *PartitionedQueue[T]) Partition(i int) <-chan T {
	return queue.partitions[i]
}

// Publish blocks while the target partition is full.
func (queue *PartitionedQueue[T]) Publish(partitionKey string, msg T) {
	idx := PartitionIndex(partitionKey, len(queue.partitions))
	queue.partitions[idx] <- msg
	metricMessagesPublishedTotal.WithLabelValues(queue.name, strconv.Itoa(idx)).Inc()
}

// Close closes every partition. Publishing after Close panics.
func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
	metricOpenPartitions.WithLabelValues(queue.name).Sub(float64(len(queue.partitions)))
}

// PartitionIndex maps key onto [0, n) with FNV-1a.
func PartitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
