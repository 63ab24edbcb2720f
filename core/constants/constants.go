package constants

import "time"

// Request handling
const (
	DefaultRequestTimeout = 15 * time.Second
	ImportRequestTimeout  = 2 * time.Minute

	ContextActorName = "actor_name"
	AnonymousActor   = "anonymous"

	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Rooms
const (
	// DefaultRoomCapacity applies when a room is created through the
	// identity resolver without an explicit capacity.
	DefaultRoomCapacity = 4
)

// Change feed channels, one per collection.
const (
	FeedChannelPrefix       = "changefeed:"
	CollectionParticipants  = "participants"
	CollectionGroups        = "groups"
	CollectionRooms         = "rooms"
)

// Background worker
const (
	TaskAuditWrite     = "audit:write"
	WorkerQueueDefault = "default"
	WorkerConcurrency  = 4
)
