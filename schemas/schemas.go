// Package schemas embeds the JSON Schemas shipped with the module.
package schemas

import _ "embed"

// LeaderboardSchemaJSON is the schema for generated leaderboard documents.
//
//go:embed leaderboard.schema.json
var LeaderboardSchemaJSON string
