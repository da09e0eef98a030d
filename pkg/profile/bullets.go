package profile

import "strings"

// ParseBullets turns newline-delimited free text into bullets: every line
// is trimmed and blank lines are dropped. The result is never nil.
func ParseBullets(text string) []Bullet {
	out := []Bullet{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Bullet{BulletText: line})
	}
	return out
}
