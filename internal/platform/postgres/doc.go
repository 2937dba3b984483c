// Package postgres implements the store interfaces on PostgreSQL. Each
// store maps one aggregate (members, products, cart items, search history)
// to its table, translating pgx driver errors into the sentinel errors the
// store package defines. Schema migrations live in the migrations
// subdirectory and run through goose.
package postgres
