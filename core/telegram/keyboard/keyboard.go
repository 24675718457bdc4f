// Package keyboard builds telebot reply markups from plain caption rows.
package keyboard

import tele "gopkg.in/telebot.v4"

// Reply builds a resized reply keyboard from rows of captions.
func Reply(rows [][]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.Btn, 0, len(row))
		for _, caption := range row {
			buttons = append(buttons, markup.Text(caption))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}
