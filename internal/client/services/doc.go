// Package services holds the planner's application logic on top of the
// storage tiers: login sessions, the per-user influencer directory and the
// per-influencer workspace.
package services
