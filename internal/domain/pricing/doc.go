// Package pricing contains the order pricing core shared by the storefront
// checkout flow and the admin manual-order composer: cart totals, discount
// code evaluation, tax computation, and the final itemized pricing result.
//
// The package is pure computation. It never mutates its inputs, performs no
// I/O, and keeps no state between calls; rule snapshots are passed in by the
// caller. Discount usage accounting deliberately lives outside this package
// (in the order-persistence layer) so that abandoned evaluations never
// consume usage quota.
package pricing
