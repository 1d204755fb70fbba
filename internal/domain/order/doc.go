// Package order contains the unified order model shared by every supplier.
//
// A UnifiedOrder is the vendor-agnostic record assembled once per compile
// request from loosely-typed upstream input. It is read-only after the builder
// returns it and is never persisted; supplier compilers turn it into vendor
// request descriptors.
//
// Key concepts:
//   - Target: the supplier a payload is compiled for (ABC, BEACON, SRS)
//   - FulfillmentMethod / TimeWindow: closed vocabularies that each supplier
//     translates through its own lookup table
//   - PreconditionError: raised by compilers when handed an order that should
//     never have left the builder
package order
