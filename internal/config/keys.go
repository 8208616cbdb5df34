package config

import "fmt"

// Redis key naming. Kept in one place so services, middlewares and
// workers never disagree on key layout.

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding the active JWT ID (jti)
// for a user. Written on login and profile update, cleared on logout.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("session:user:%d", userID)
}

// NotificationChannel returns the Redis PubSub channel carrying live
// notifications for a recipient username.
func (r *CacheKeyStruct) NotificationChannel(username string) string {
	return fmt.Sprintf("notify:%s", username)
}

var CacheKey = NewCacheKeyStruct()

// Worker queue names.
type WorkerKeyStruct struct {
	AbsenteeAlertQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AbsenteeAlertQueue: "absentee_alert_queue",
}
