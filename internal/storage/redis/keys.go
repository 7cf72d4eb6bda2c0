package redis

import (
	"fmt"
	"strings"
)

// Key prefix for all onboarding data
const keyPrefix = "onboard"

// rowKey returns the Redis key for a stored row
func rowKey(table, id string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, table, id)
}

// tableIndexKey returns the Redis key for the LIST of row ids in a table
func tableIndexKey(table string) string {
	return fmt.Sprintf("%s:idx:%s", keyPrefix, table)
}

// emailIndexKey returns the Redis key for the email -> id unique index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(email))
}
