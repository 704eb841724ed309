// Package storage provides the durable keyed-record layer backing the
// collection and settings stores. Each record is an opaque byte payload
// addressed by a string key, and records are independently readable and
// writable: writing one record never touches another.
//
// Two backends are provided: a file backend that keeps one JSON file per
// record, and a SQLite backend that keeps all records in a single
// key/value table.
package storage
