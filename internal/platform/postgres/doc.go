// Package postgres provides PostgreSQL implementations of the store
// interfaces on top of gorm. It owns the connection setup, the embedded
// goose migrations, the row models, and the translation of driver errors
// into store sentinel errors.
package postgres
