// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL persistence layer. Each store wraps a
// *sql.DB and exposes typed operations for one table.
package store

import "errors"

// ErrNotFound is returned when a requested row does not exist. Callers
// check it with errors.Is to distinguish "missing" from real failures.
var ErrNotFound = errors.New("store: not found")
