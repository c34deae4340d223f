package utils

import "time"

// SlotLockPrefix is the prefix used for Redis consultation-day lock keys.
const SlotLockPrefix = "lock:consultation:"

// HealthCheckInterval is how often the health monitor refreshes its snapshot.
const HealthCheckInterval = 60 * time.Second
