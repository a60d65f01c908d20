// Package models defines client-side data models used by the sedaily CLI:
// the session User record, disk cache keys and cached podcast summaries.
package models
