package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	tele "gopkg.in/telebot.v4"

	"github.com/siteit/leadbot/core/telegram/callbacks"
	"github.com/siteit/leadbot/core/telegram/keyboard"
)

// referenceCategories maps gallery categories to their image folders.
var referenceCategories = []struct {
	Title string
	Dir   string
}{
	{"🚗 Автомобили", "auto"},
	{"💄 Бьюти-сфера", "beauty"},
	{"🏗 Строительство", "building"},
	{"🍕 Еда и товары", "food"},
	{"🏭 Промышленность", "industry"},
	{"🏠 Ремонтные работы", "repair"},
	{"👨‍💻 Специалисты", "specialist"},
}

// ReferenceList shows the work-example categories.
func (h *Handlers) ReferenceList(c tele.Context) error {
	userID := c.Sender().ID
	h.state.Clear(userID)
	h.state.SetState(userID, StateReference)

	rows := make([][]keyboard.InlineBtn, 0, len(referenceCategories)+1)
	for _, cat := range referenceCategories {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   cat.Title,
			Unique: cbRefView,
			Data:   cat.Dir,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: btnMainMenu, Unique: cbMenu}})

	return c.EditOrSend(textReferenceList, &tele.SendOptions{
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: keyboard.InlineButtonsRows(rows...),
	})
}

// ReferenceView sends the photo album of one category. Missing files
// degrade to the text card alone.
func (h *Handlers) ReferenceView(c tele.Context) error {
	dir := callbacks.CallbackPayload(c)

	title := ""
	for _, cat := range referenceCategories {
		if cat.Dir == dir {
			title = cat.Title
			break
		}
	}
	if title == "" {
		return nil
	}

	var album tele.Album
	for num := 1; num <= 4; num++ {
		path := filepath.Join(h.refDir, dir, fmt.Sprintf("%d.PNG", num))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		album = append(album, &tele.Photo{File: tele.FromDisk(path)})
	}
	if len(album) > 0 {
		_ = c.SendAlbum(album)
	}

	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: btnBack, Unique: cbRefBack}},
		[]keyboard.InlineBtn{{Text: btnMainMenu, Unique: cbMenu}},
	)
	if err := c.Send(fmt.Sprintf(textReferenceFor, title), markup); err != nil {
		return err
	}
	_ = c.Delete()
	return nil
}
