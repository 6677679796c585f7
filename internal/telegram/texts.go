package telegram

// UI texts in Russian, as shown to end users.
const (
	welcomeText = "Здравствуйте!\n\n" +
		"<b>Здесь Вы можете анонимно сообщить о противоправных действиях сотрудников правоохранительных органов Крыма.</b>\n" +
		"Ваша информация будет рассмотрена в кратчайшие сроки!\n\n" +
		"Можете оставить свои контактные данные для обратной связи."

	ackText = "Информация получена и будет направлена по компетенции.\n" +
		"Если хотите что-то добавить, просто напишите сюда.\n" +
		"Пожалуйста, оставьте свои контактные данные для обратной связи."
)
