package redis

import "fmt"

// Key prefix for all activity data
const keyPrefix = "mhs"

// activityKey returns the Redis key for an activity's descriptive record
func activityKey(name string) string {
	return fmt.Sprintf("%s:activity:%s", keyPrefix, name)
}

// participantsKey returns the Redis key for the LIST of participant emails in signup order
func participantsKey(name string) string {
	return fmt.Sprintf("%s:participants:%s", keyPrefix, name)
}

// activitiesIndexKey returns the Redis key for the SET of activity names
func activitiesIndexKey() string {
	return fmt.Sprintf("%s:idx:activities", keyPrefix)
}
