package database

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Slot labels are free-form strings like "11:00am - 12:00pm"; the
// reservations DDL must leave them room, or inserts of valid bookings
// fail under strict mode (and truncate under non-strict, breaking the
// occupancy lookup's exact slot match).
func TestReservationSchemaStoresSlotLabels(t *testing.T) {
	ddl := findTableDDL(t, "reservations")

	assert.GreaterOrEqual(t, varcharWidth(t, ddl, "booking_time"), len("11:00am - 12:00pm"))
	assert.GreaterOrEqual(t, varcharWidth(t, ddl, "booking_date"), len("2026-09-12"))
	assert.GreaterOrEqual(t, varcharWidth(t, ddl, "mobile_num"), len("+61412345678"))
}

func findTableDDL(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			return stmt
		}
	}
	t.Fatalf("no DDL for table %s", table)
	return ""
}

func varcharWidth(t *testing.T, ddl, column string) int {
	t.Helper()
	re := regexp.MustCompile(column + `\s+VARCHAR\((\d+)\)`)
	m := re.FindStringSubmatch(ddl)
	require.NotNil(t, m, "column %s not declared VARCHAR", column)
	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	return n
}
