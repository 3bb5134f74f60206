// Package exception contains the delivery-exception aggregate and its
// satellite types. A DeliveryException tracks a problematic shipment through
// the hands of the back-office roles; its owner is mirrored into the order's
// workflow phase, and every change is audited through an order Comment.
package exception
