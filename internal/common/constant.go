// Package common contains shared constants, sentinel errors and small helpers
// used by both the planner CLI and the reel proxy.
package common

// ReelRoute is the proxy path the CLI posts prompts to.
const ReelRoute = "/api/generate-reel"

// VideoContentType is the media type of a rendered reel.
const VideoContentType = "video/mp4"
