// Package catalog is the static registry of menu options. Every button
// carries a stable logical key and a display caption; dispatch works on
// keys, so captions can be reworded without touching handlers.
package catalog

import "fmt"

// Menu names a group of selectable options.
type Menu string

const (
	MenuMain      Menu = "main"
	MenuFilters   Menu = "filters"
	MenuLists     Menu = "lists"
	MenuRandom    Menu = "random"
	MenuFavorites Menu = "favorites"
	MenuSettings  Menu = "settings"
)

// Logical keys of the main menu.
const (
	KeySearchByFilters = "searchByFilters"
	KeyRandomName      = "randomName"
	KeyNameLists       = "nameLists"
	KeyNameMeaning     = "nameMeaning"
	KeyFavorites       = "favorites"
	KeySettings        = "settings"
)

// Logical keys of the filters menu.
const (
	KeyGenderBoy  = "genderBoy"
	KeyGenderGirl = "genderGirl"
	KeyEuropean   = "european"
	KeyEastern    = "eastern"
	KeyArabian    = "arabian"
	KeyCaucasian  = "caucasian"
	KeyRare       = "rare"
)

// Logical keys of the random-name action menu.
const (
	KeyAccept         = "accept"
	KeyRequestAnother = "requestAnother"
	KeyAddToFavorites = "addToFavorites"
)

// Logical keys of the favorites action menu.
const (
	KeyFavoriteAdd    = "add"
	KeyFavoriteDelete = "delete"
)

// Logical keys of the name-lists menu.
const (
	KeyTopPopular  = "topPopular"
	KeyRareUnusual = "rareUnusual"
	KeyClassicOld  = "classicOld"
)

// Universal captions recognized in every state.
const (
	CaptionBack  = "⬅️ В главное меню"
	CaptionApply = "✅ Применить"
	CaptionMore  = "🔄 Загрузить ещё"
)

type entry struct {
	key     string
	caption string
}

var menus = map[Menu][]entry{
	MenuMain: {
		{KeySearchByFilters, "🔍 Подбор имени (по параметрам)"},
		{KeyRandomName, "🎲 Случайное имя"},
		{KeyNameLists, "📜 Списки имен"},
		{KeyNameMeaning, "💡 Значение имени"},
		{KeyFavorites, "❤️ Избранные имена"},
		{KeySettings, "⚙️ Настройки"},
	},
	MenuFilters: {
		{KeyGenderBoy, "👦 Мальчик"},
		{KeyGenderGirl, "👧 Девочка"},
		{KeyEuropean, "🌍 Европейские"},
		{KeyEastern, "🌏 Восточные"},
		{KeyArabian, "🕌 Арабские"},
		{KeyCaucasian, "🏔 Кавказские"},
		{KeyRare, "Редкие"},
	},
	MenuLists: {
		{KeyTopPopular, "💎 Топ популярных имен"},
		{KeyRareUnusual, "🕊 Редкие и необычные"},
		{KeyClassicOld, "📜 Классические и старинные"},
	},
	MenuRandom: {
		{KeyAccept, "✅ Принять"},
		{KeyRequestAnother, "🔁 Попросить другое"},
		{KeyAddToFavorites, "❤️ Добавить в избранное"},
	},
	MenuFavorites: {
		{KeyFavoriteAdd, "✅ Добавить"},
		{KeyFavoriteDelete, "❌  Удалить"},
	},
	MenuSettings: {
		{"exportFavorites", "📥 Экспорт избранных имен"},
		{"notifications", "🔔 Уведомления"},
		{"theme", "🎨 Тема"},
		{"language", "🌍 Язык интерфейса"},
	},
}

// byCaption maps menu -> caption -> key for reverse lookup.
var byCaption = func() map[Menu]map[string]string {
	index := make(map[Menu]map[string]string, len(menus))
	for menu, entries := range menus {
		rev := make(map[string]string, len(entries))
		for _, e := range entries {
			if _, dup := rev[e.caption]; dup {
				panic(fmt.Sprintf("catalog: duplicate caption %q in menu %q", e.caption, menu))
			}
			rev[e.caption] = e.key
		}
		index[menu] = rev
	}
	return index
}()

// Resolve maps a display caption to its logical key within a menu.
func Resolve(menu Menu, caption string) (string, bool) {
	key, ok := byCaption[menu][caption]
	return key, ok
}

// ResolveMany maps captions to keys, preserving order and skipping unresolved ones.
func ResolveMany(menu Menu, captions []string) []string {
	keys := make([]string, 0, len(captions))
	for _, caption := range captions {
		if key, ok := Resolve(menu, caption); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// IsKnownCaption reports whether the caption belongs to the menu.
func IsKnownCaption(menu Menu, caption string) bool {
	_, ok := Resolve(menu, caption)
	return ok
}

// Caption returns the display caption for a logical key, or the key itself
// when unknown (better a raw key on a button than an empty label).
func Caption(menu Menu, key string) string {
	for _, e := range menus[menu] {
		if e.key == key {
			return e.caption
		}
	}
	return key
}

// Size returns the number of selectable entries in a menu.
func Size(menu Menu) int {
	return len(menus[menu])
}

// Layout returns keyboard rows of captions for a menu. Rows are display
// grouping only and carry no dispatch meaning.
func Layout(menu Menu) [][]string {
	switch menu {
	case MenuMain:
		return [][]string{
			{Caption(MenuMain, KeySearchByFilters), Caption(MenuMain, KeyRandomName)},
			{Caption(MenuMain, KeyNameLists), Caption(MenuMain, KeyNameMeaning)},
			{Caption(MenuMain, KeyFavorites), Caption(MenuMain, KeySettings)},
		}
	case MenuFilters:
		return [][]string{
			{Caption(MenuFilters, KeyGenderBoy), Caption(MenuFilters, KeyGenderGirl), Caption(MenuFilters, KeyRare)},
			{Caption(MenuFilters, KeyEuropean), Caption(MenuFilters, KeyEastern)},
			{Caption(MenuFilters, KeyArabian), Caption(MenuFilters, KeyCaucasian)},
			{CaptionApply, CaptionBack},
		}
	case MenuLists:
		return [][]string{
			{Caption(MenuLists, KeyTopPopular), Caption(MenuLists, KeyRareUnusual)},
			{Caption(MenuLists, KeyClassicOld), CaptionBack},
		}
	case MenuRandom:
		return [][]string{
			{Caption(MenuRandom, KeyAccept), Caption(MenuRandom, KeyRequestAnother)},
			{Caption(MenuRandom, KeyAddToFavorites)},
			{CaptionBack},
		}
	case MenuFavorites:
		return [][]string{
			{Caption(MenuFavorites, KeyFavoriteAdd), Caption(MenuFavorites, KeyFavoriteDelete)},
			{CaptionBack},
		}
	case MenuSettings:
		return [][]string{
			{Caption(MenuSettings, "exportFavorites"), Caption(MenuSettings, "notifications")},
			{Caption(MenuSettings, "theme"), Caption(MenuSettings, "language")},
			{CaptionBack},
		}
	}
	return nil
}

// LayoutMore is the keyboard shown alongside paginated results.
func LayoutMore() [][]string {
	return [][]string{{CaptionMore}, {CaptionBack}}
}

// LayoutApply is the keyboard suggesting to apply the selected filters.
func LayoutApply() [][]string {
	return [][]string{{CaptionApply}, {CaptionBack}}
}

// LayoutBack is the minimal keyboard with only the return button.
func LayoutBack() [][]string {
	return [][]string{{CaptionBack}}
}
