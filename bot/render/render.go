// Package render composes outbound message texts. All output is HTML
// parse mode; user-supplied and database strings are escaped before any
// markup is added, and truncation happens on plain items so a tag is
// never split.
package render

import (
	"html"
	"strings"

	"github.com/m3rciful/namebot/storage"
)

// MaxMessageLen is the hard payload cutoff applied before sending.
const MaxMessageLen = 4090

const (
	// NothingFound is returned instead of an empty list body.
	NothingFound = "Ничего не найдено."
	// NoFavorites is returned instead of an empty favorites list.
	NoFavorites = "<i>Ваш список избранных имен пуст.</i>"
)

const favoritesRuler = "\n ╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌\n"

// NameLine renders a single record as bold name and mono note.
func NameLine(name, note string) string {
	return "<b>" + html.EscapeString(name) + "</b> — <code>" + html.EscapeString(note) + "</code>"
}

// NameList renders records one per block. Records that would push the
// text past MaxMessageLen are dropped whole; empty input yields the
// NothingFound sentinel.
func NameList(records []storage.Name) string {
	if len(records) == 0 {
		return NothingFound
	}
	var b strings.Builder
	for _, rec := range records {
		line := NameLine(rec.Name, rec.Note) + "\n\n"
		if b.Len()+len(line) > MaxMessageLen {
			break
		}
		b.WriteString(line)
	}
	if b.Len() == 0 {
		return NothingFound
	}
	return strings.TrimRight(b.String(), "\n")
}

// Favorites renders the favorites list as a comma-separated mono row,
// with the sentinel when empty.
func Favorites(records []storage.Favorite) string {
	return favoritesRow(records, MaxMessageLen)
}

// favoritesRow caps the rendered row at budget bytes, dropping whole
// items so a tag is never split.
func favoritesRow(records []storage.Favorite, budget int) string {
	if len(records) == 0 {
		return NoFavorites
	}
	parts := make([]string, 0, len(records))
	total := 0
	for _, rec := range records {
		part := "<code>" + html.EscapeString(rec.Name) + "</code>"
		if total+len(part)+2 > budget {
			break
		}
		total += len(part) + 2
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return NoFavorites
	}
	return strings.Join(parts, ", ")
}

// FavoritesBlock renders a header line followed by the ruler and the
// list. The prefix length counts against the list's budget, so the
// composed block fits the cap without ever cutting inside markup.
func FavoritesBlock(header string, records []storage.Favorite) string {
	prefix := header + favoritesRuler + "<b>ИЗБРАННЫЕ:</b> "
	return prefix + favoritesRow(records, MaxMessageLen-len(prefix))
}

// Truncate enforces MaxMessageLen with a hard cutoff at a rune boundary.
// Formatter outputs already fit; this is the last line of defense for
// composed texts.
func Truncate(s string) string {
	if len(s) <= MaxMessageLen {
		return s
	}
	cut := MaxMessageLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
