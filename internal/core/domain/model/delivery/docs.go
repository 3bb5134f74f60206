// Package delivery holds the read-side view of shipments from the external
// order system. A Delivery carries the order id, courier assignment, tracking
// number, the current phase-history reference and stock timestamps, plus the
// delivery exception attached to the shipment when one exists.
package delivery
