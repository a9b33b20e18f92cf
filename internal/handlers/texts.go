package handlers

import (
	"fmt"
	"html"
)

const (
	textAskName = "👋 Приветствуем Вас!\nДавайте познакомимся. Как Вас зовут?"

	textHello = "👋 Приветствуем Вас, %s!\n\n" +
		"Мы — команда, создающая <b>качественные, стильные и продающие сайты.</b>\n\n" +
		"Мы поможем воплотить Ваши идеи и получить сайт, который привлекает клиентов и увеличивает продажи.\n\n" +
		"Давайте разберемся, какой сайт Вам нужен!"

	textNiceToMeet = "Мы рады познакомиться с Вами, %s!\n\n" +
		"Теперь наша очередь рассказать о себе.\n" +
		"Мы — команда, создающая <b>качественные, стильные и продающие сайты.</b>\n" +
		"Мы поможем воплотить Ваши идеи и получить сайт, который привлекает клиентов и увеличивает продажи.\n" +
		"Давайте разберемся, какой сайт Вам нужен!"

	textMainMenu = "🏠 Вы находитесь в главном меню"

	textContacts = "Свяжитесь с нами:\n\n" +
		"📞 Телефон: %s\n" +
		"📧 Email: %s\n" +
		"📱 Telegram: %s"

	textReferenceList = "<b>Примеры работ.</b>\n\nВыберите категорию."
	textReferenceFor  = "Примеры по теме %s"

	textAskPhone = "📞 Оставьте ваш номер телефона, чтобы менеджер мог с вами связаться."

	textLeadAccepted = "✅ Отлично! Ваша заявка принята. Менеджер свяжется с Вами в ближайшее время"

	textEnterText      = "Введите текст"
	textGenericFailure = "Что-то пошло не так. Попробуйте ещё раз."

	textGroupAdded   = "Эта группа добавлена в список рассылки"
	textGroupRemoved = "Эта группа удалена из списка рассылки"
	textGroupUnknown = "Эта группа не числится в списке рассылки"
	textAddGroupHint = "Чтобы добавить группу в список рассылки, добавьте бота в группу и введите команду /add_group там"

	textAdminAdded    = "Пользователь %d назначен администратором"
	textAdminRemoved  = "Пользователь %d разжалован"
	textAdminUnknown  = "Пользователь %d не является администратором"
	textAdminNotified = "Вы назначены администратором"
	textAdminUsage    = "Использование: %s <telegram_id> [username]"

	btnMainMenu     = "🏠 Вернуться в главное меню"
	btnOrder        = "💻 Заказать сайт"
	btnContacts     = "📞 Наши контакты"
	btnReference    = "📂 Примеры работ"
	btnBack         = "Назад"
	btnShareContact = "Поделиться контактом"
	btnMyNameIs     = "Меня зовут %s!"
)

// helloText and niceToMeetText interpolate the user-supplied name into
// HTML-mode messages; the name is escaped so it cannot break parsing.
func helloText(name string) string {
	return fmt.Sprintf(textHello, html.EscapeString(name))
}

func niceToMeetText(name string) string {
	return fmt.Sprintf(textNiceToMeet, html.EscapeString(name))
}
