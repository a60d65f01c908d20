package models

// DiskKey names a folder-like bucket in the on-disk cache.
type DiskKey string

const (
	DiskKeyPodcastFolder DiskKey = "Podcasts"
)

// FolderPath returns the bucket's file path relative to the cache root,
// e.g. "Podcasts/Podcasts.json".
func (k DiskKey) FolderPath() string {
	return string(k) + "/" + string(k) + ".json"
}
