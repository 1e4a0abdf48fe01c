package triviascot

import (
	"context"
	"fmt"
	"github.com/slack-go/slack"
	"hash/crc32"
	"math"
	"sync"
)

// messageProcessor is the function processing a message event once dispatched to a partition
type messageProcessor func(msgEvent slack.MessageEvent)

type partitionRouter struct {
	// Logger
	log SLogger

	// messageQueues with partition keyed by the hash of the channel id
	// so that all messages of a channel are handled by the same work queue
	// therefore ensuring ordered processing of those events. With a single
	// partition, every message is processed to completion before the next one
	messageQueues []chan slack.MessageEvent

	// workers tracks the running partition workers
	workers sync.WaitGroup

	hashMask int

	*instrumenter
}

func newPartitionRouter(partitionCount int, queueBufferSize int, log SLogger, instrumenter *instrumenter) (pr *partitionRouter, err error) {
	if !isPowerOfTwo(partitionCount) {
		return nil, fmt.Errorf("A partition router can only work with a partitionCount that is a power of two but was [%d]", partitionCount)
	}

	pr = new(partitionRouter)
	pr.messageQueues = make([]chan slack.MessageEvent, partitionCount)
	for i := range pr.messageQueues {
		pr.messageQueues[i] = make(chan slack.MessageEvent, queueBufferSize)
	}
	pr.hashMask = hashMask(partitionCount)
	pr.log = log
	pr.instrumenter = instrumenter

	return pr, nil
}

// start starts one worker per partition. Each worker processes the messages of its partition
// sequentially until stop is called
func (pr *partitionRouter) start(process messageProcessor) {
	for i, q := range pr.messageQueues {
		pr.workers.Add(1)

		go func(partition int, queue <-chan slack.MessageEvent) {
			defer pr.workers.Done()

			for msgEvent := range queue {
				process(msgEvent)
			}

			pr.log.Debugf("Worker for partition [%d] terminated", partition)
		}(i, q)
	}
}

// stop closes all partition queues and waits for workers to finish processing all queued messages.
// No message can be routed once stop has been called
func (pr *partitionRouter) stop() {
	for _, q := range pr.messageQueues {
		close(q)
	}

	pr.workers.Wait()
}

// routeMessageEvent routes the message processing to the correct partition based on its channel to ensure
// that all messages of a channel are processed in order
func (pr *partitionRouter) routeMessageEvent(msgEvent slack.MessageEvent) {
	partition := pr.partitionForChannel(msgEvent.Channel)

	pr.log.Debugf("Dispatching message [%s] on channel [%s] to partition [%d]", msgEvent.Timestamp, msgEvent.Channel, partition)
	d := measure(func() {
		pr.messageQueues[partition] <- msgEvent
	})

	pr.coreMetrics.msgDispatchLatencyMillis.Record(context.Background(), d.Milliseconds(), pr.nameAttrs)
}

// partitionForChannel returns the partition index for a given channel ID
func (pr *partitionRouter) partitionForChannel(channelID string) (partition int) {
	res := crc32.ChecksumIEEE([]byte(channelID))

	// Keep only the rightmost bits so we have a max equal to the partition count
	return int(res) & pr.hashMask
}

// isPowerOfTwo returns true if val is a power of two or false if not
func isPowerOfTwo(val int) bool {
	return (val > 0) && (val&(val-1)) == 0
}

// hashMask builds a mask for a partitionCount (which should be a power of two) to get a hash value
// that is in the range of the number of partitions we have
func hashMask(partitionCount int) int {
	maskSize := int(math.Log2(float64(partitionCount)))
	mask := 0
	for i := 0; i < maskSize; i++ {
		mask = mask<<1 | 1
	}

	return mask
}
