package wallpaper

import "time"

// Wallpaper is the single record the store holds: the most recently
// generated image and when it was generated. There is no history; each
// successful generation overwrites the previous one.
type Wallpaper struct {
	Image       []byte
	Format      string
	Prompt      string
	GeneratedAt time.Time
}
