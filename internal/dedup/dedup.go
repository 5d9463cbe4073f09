package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type seenEntry struct {
	MatchID   string `json:"matchId"`
	Timestamp int64  `json:"timestamp"`
}

// MatchCache remembers which matches were already reported.
type MatchCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
	now      func() time.Time
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

const cacheFile = "seen_matches.json"

// NewMatchCache creates or loads a match cache
func NewMatchCache(cacheDir string) *MatchCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &MatchCache{
		filePath: filepath.Join(cacheDir, cacheFile),
		seen:     make(map[string]int64),
		now:      time.Now,
	}
	cache.load()
	return cache
}

// IsSeen checks if a match has already been reported
func (mc *MatchCache) IsSeen(matchID string) bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	_, exists := mc.seen[matchID]
	return exists
}

func (mc *MatchCache) Add(matchIDs ...string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now().UnixMilli()
	changed := false
	for _, id := range matchIDs {
		if id == "" {
			continue
		}
		if _, exists := mc.seen[id]; !exists {
			mc.seen[id] = now
			changed = true
		}
	}

	if changed {
		mc.save()
	}
}

// load reads the cache from disk, dropping entries older than thirty days
func (mc *MatchCache) load() {
	data, err := os.ReadFile(mc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", cacheFile, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", cacheFile, err)
		return
	}

	thirtyDaysAgo := mc.now().UnixMilli() - thirtyDaysMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > thirtyDaysAgo {
			mc.seen[e.MatchID] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously reported matches (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk
func (mc *MatchCache) save() {
	entries := make([]seenEntry, 0, len(mc.seen))
	for id, ts := range mc.seen {
		entries = append(entries, seenEntry{MatchID: id, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen matches: %v", err)
		return
	}
	if err := os.WriteFile(mc.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write %s: %v", cacheFile, err)
	}
	log.Printf("💾 Saved %d reported matches to cache", len(entries))
}
