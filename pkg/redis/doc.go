// Package redis manages the Redis client used by the shared permission
// snapshot cache: environment-driven configuration, connection with startup
// retries, and a health check helper.
package redis
