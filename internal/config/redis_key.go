package config

import "fmt"

type RedisKeyStruct struct{}

// NotificationsReadKey returns the Redis set key holding the rendered
// notification texts a user has already acknowledged.
func (r *RedisKeyStruct) NotificationsReadKey(userID int) string {
	return fmt.Sprintf("notif:read:%d", userID)
}

var RedisKey = &RedisKeyStruct{}
