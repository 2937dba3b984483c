// Package store defines the persistence interfaces for members, products,
// cart items, and search history, together with the sentinel errors the
// implementations translate database failures into. Services depend on
// these interfaces rather than on a concrete database so the business
// rules stay independent of the storage technology.
package store
