package flow

import (
	"github.com/m3rciful/namebot/bot/catalog"
	"github.com/m3rciful/namebot/core/telegram/keyboard"
)

const (
	msgMainMenu           = "Главное меню"
	msgChooseMenu         = "Пожалуйста, выберите один из пунктов меню."
	msgChooseFilters      = "Выберите параметры:"
	msgFilterFromMenu     = "Выберите параметр из списка меню!"
	msgCurrentFilters     = "Текущие фильтры: %s"
	msgAllFiltersSelected = "Все фильтры выбраны. Нажмите «Применить»."
	msgNoFiltersSelected  = "Вы не выбрали параметры запроса."
	msgChooseCategory     = "Выберите категорию:"
	msgCategoryFromMenu   = "Выберите категорию из списка меню!"
	msgEnterMeaningName   = "Введите имя, и я расскажу о его значении."
	msgMeaningLocalNote   = "Значение имени: \n\n%s"
	msgMeaningNotFound    = "Значений не найдено."
	msgInvalidName        = "<b>Не валидное имя!</b>\n<i>(не меньше 2 и не больше 16 букв, не число)</i>"
	msgSearchingRandom    = "Ищу для вас случайное Имя..."
	msgChooseAction       = "Выберите действие:"
	msgActionFromMenu     = "Выберите действие из списка меню!"
	msgEnterNameFirst     = "<b>Введите Имя!</b>"
	msgChooseActionNow    = "<b>Теперь выберите действие.</b>"
	msgFavoritesPrompt    = "<b>Введите имя и выберите ✅  |  ❌</b>"
	msgFavoriteAdded      = "<b> ✅ Имя добавлено в Избранные!</b>"
	msgFavoriteDeleted    = "<b>❌  Имя удалено </b>"
	msgRandomAccepted     = "Имя добавлено в избранные"
	msgRandomFavorited    = "Имя добавлено в Избранное."
	msgTryAgain           = "Ошибка! Попробуйте начать заново."
	msgGenericFailure     = "Что-то пошло не так. Попробуйте ещё раз."
	msgSettingsStub       = "Функционал раздела еще не реализован."
)

var (
	kbMain      = keyboard.Reply(catalog.Layout(catalog.MenuMain))
	kbFilters   = keyboard.Reply(catalog.Layout(catalog.MenuFilters))
	kbLists     = keyboard.Reply(catalog.Layout(catalog.MenuLists))
	kbRandom    = keyboard.Reply(catalog.Layout(catalog.MenuRandom))
	kbFavorites = keyboard.Reply(catalog.Layout(catalog.MenuFavorites))
	kbSettings  = keyboard.Reply(catalog.Layout(catalog.MenuSettings))
	kbMore      = keyboard.Reply(catalog.LayoutMore())
	kbApply     = keyboard.Reply(catalog.LayoutApply())
	kbBack      = keyboard.Reply(catalog.LayoutBack())
)
