package theme

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// phrases maps a theme name to the descriptive phrase used to build the
// generation prompt.
var phrases = map[string]string{
	"nature":    "a lush green forest with morning mist and soft golden sunlight filtering through the trees",
	"abstract":  "flowing abstract shapes in deep blues and purples with subtle metallic highlights",
	"space":     "a vast nebula with swirling clouds of color, distant stars and a small silhouetted planet",
	"cityscape": "a futuristic city skyline at dusk with neon reflections on wet streets",
	"ocean":     "calm turquoise ocean waves seen from above with light foam patterns",
	"mountains": "dramatic snow-capped mountain peaks above a sea of clouds at sunrise",
	"minimal":   "a minimal composition of soft gradients in muted pastel tones with plenty of negative space",
	"autumn":    "a quiet autumn path covered in red and orange leaves under warm afternoon light",
}

// Phrase resolves a theme name to its canned phrase.
func Phrase(name string) (string, bool) {
	p, ok := phrases[name]
	return p, ok
}

// Names returns all known theme names in stable order.
func Names() []string {
	names := lo.Keys(phrases)
	sort.Strings(names)
	return names
}

// ForDay picks the theme for a given day. Scheduled refreshes rotate
// through the registry so consecutive days get different wallpapers.
func ForDay(t time.Time) string {
	names := Names()
	return names[t.UTC().YearDay()%len(names)]
}
