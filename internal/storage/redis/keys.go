package redis

import "fmt"

// Key prefix for all keeper data
const keyPrefix = "keepers"

// recordKey returns the Redis key for a team's encrypted keeper record
func recordKey(team string) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, team)
}

// passwordLogKey returns the Redis key for the password log LIST
func passwordLogKey() string {
	return fmt.Sprintf("%s:password_log", keyPrefix)
}
