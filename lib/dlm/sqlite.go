// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package dlm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// LoadSQLite reads a Database from a materialized snapshot: a SQLite
// file with a table
//
//	components(cid INTEGER NOT NULL, qid INTEGER, cpu_versions TEXT)
//
// where cpu_versions is a comma-separated version list. A NULL or
// empty cpu_versions means the entry carries no CPU property. The
// file is opened read-only; duplicate component IDs are an error.
func LoadSQLite(path string) (Database, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("opening DLM snapshot: %w", err)
	}
	defer conn.Close()

	database := make(Database)
	var errs []error
	err = sqlitex.Execute(conn,
		"SELECT cid, qid, cpu_versions FROM components ORDER BY cid, qid",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				cid := stmt.ColumnInt(0)

				var id ComponentID
				var err error
				if stmt.ColumnIsNull(1) {
					id, err = NewComponentID(cid)
				} else {
					id, err = NewQualifiedComponentID(cid, stmt.ColumnInt(1))
				}
				if err != nil {
					errs = append(errs, err)
					return nil
				}
				if _, exists := database[id]; exists {
					errs = append(errs, fmt.Errorf("duplicate component ID %s", id))
					return nil
				}

				entry := ComponentEntry{ID: id}
				if !stmt.ColumnIsNull(2) {
					versions, err := parseVersionList(stmt.ColumnText(2))
					if err != nil {
						errs = append(errs, fmt.Errorf("component %s: %w", id, err))
						return nil
					}
					if versions != nil {
						property := NewCPUProperty(versions)
						entry.CPU = &property
					}
				}
				database[id] = entry
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("%s: reading components: %w", path, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	return database, nil
}

// parseVersionList parses a comma-separated integer list. An empty
// string yields nil.
func parseVersionList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	versions := make([]int, 0, len(parts))
	for _, part := range parts {
		version, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("cpu_versions %q: %w", raw, err)
		}
		versions = append(versions, version)
	}
	return versions, nil
}
