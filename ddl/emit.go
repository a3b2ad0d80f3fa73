// Package ddl renders Hive import statements for one dataset version: a
// drop/create-external-table/repair block per version, plus a version-less
// alias block for the latest version.
package ddl

import (
	"fmt"
	"strings"
)

// Column is one translated table column.
type Column struct {
	Name string
	Type string
}

// CollisionError reports table columns that share a name with a partition
// column. Ambiguous column identity would corrupt downstream queries, so
// this is rejected rather than resolved.
type CollisionError struct {
	Columns []string
}

func (e *CollisionError) Error() string {
	return "columns collide with partition columns: " + strings.Join(e.Columns, ", ")
}

// Render produces the DDL block for one version of a dataset, and when
// emitAlias is set a second block registering the bare table name against
// the same physical location. Each block is one line of three statements:
// drop, create external table, repair.
func Render(tableName string, version int, location string, partitions []string, columns []Column, emitAlias bool) ([]string, error) {
	names := make(map[string]bool, len(columns))
	for _, col := range columns {
		names[col.Name] = true
	}
	var collisions []string
	for _, part := range partitions {
		if names[part] {
			collisions = append(collisions, part)
		}
	}
	if len(collisions) > 0 {
		return nil, &CollisionError{Columns: collisions}
	}

	blocks := []string{
		block(fmt.Sprintf("%s_v%d", tableName, version), location, partitions, columns),
	}
	if emitAlias {
		blocks = append(blocks, block(tableName, location, partitions, columns))
	}

	return blocks, nil
}

func block(table, location string, partitions []string, columns []Column) string {
	cols := make([]string, 0, len(columns))
	for _, col := range columns {
		cols = append(cols, fmt.Sprintf("`%s` %s", col.Name, col.Type))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "DROP TABLE IF EXISTS %s; ", table)
	fmt.Fprintf(&sb, "CREATE EXTERNAL TABLE %s(%s)", table, strings.Join(cols, ", "))

	if len(partitions) > 0 {
		parts := make([]string, 0, len(partitions))
		for _, part := range partitions {
			parts = append(parts, fmt.Sprintf("`%s` string", part))
		}
		fmt.Fprintf(&sb, " PARTITIONED BY (%s)", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&sb, " STORED AS PARQUET LOCATION '%s'; ", location)
	fmt.Fprintf(&sb, "MSCK REPAIR TABLE %s;", table)

	return sb.String()
}
