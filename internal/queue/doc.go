// Package queue owns the durable AMQP connection used to decouple
// follower notification delivery from the admin request that triggers
// it.
//
// One Client is constructed at process start and shared by reference:
// the fan-out producer publishes through it and the delivery consumer
// drains it. The queue is durable, non-exclusive and non-auto-delete,
// and every message is marked persistent, so facts survive a broker
// restart. Delivery is at-least-once: a consumer crash between send
// and ack redelivers the message, and downstream code must tolerate
// the duplicate.
//
// Reconnect-on-failure is deliberately out of scope; a broken
// connection at startup is fatal.
package queue
