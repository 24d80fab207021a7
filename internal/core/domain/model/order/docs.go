// Package order defines the DeliveryOrder value object: the meal a customer asked for,
// identified by an opaque string id and carrying how long the kitchen needs to cook it.
//
// A DeliveryOrder is immutable once created. Two orders are the same order when their
// ids match, whatever their names or preparation times.
package order
