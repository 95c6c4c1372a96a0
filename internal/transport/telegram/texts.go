package telegram

const (
	msgAccessDenied = "⛔ Доступ запрещён."

	msgWelcome = `👋 Привет, %s!

Я бот для голосовых и текстовых заметок с AI-возможностями:

🎤 <b>Голосовые заметки</b>: отправь голосовое сообщение, я транскрибирую его и создам краткое саммари

📝 <b>Текстовые заметки</b>: просто напиши текст, и я сохраню его как заметку

🔍 <b>Умный поиск</b>: используй команду /ask чтобы задать вопрос по своим заметкам

📋 <b>Mini App</b>: открой все заметки в удобном интерфейсе

Начни с отправки голосового или текстового сообщения!`

	msgHelp = `📖 <b>Справка по боту</b>

<b>Команды:</b>
/start: начать работу
/help: эта справка
/ask &lt;вопрос&gt;: задать вопрос по заметкам
/notes: открыть заметки
/stats: статистика заметок
/status: состояние сервисов
/subscription: подписка и лимиты

<b>Как использовать:</b>

🎤 <b>Голосовые заметки</b>
Отправь голосовое сообщение. Бот транскрибирует аудио, создаст краткое AI-саммари и сохранит заметку с возможностью поиска.

📝 <b>Текстовые заметки</b>
Просто напиши текст, и он сохранится как заметка. Пересланные подряд сообщения объединяются в одну заметку.

🔍 <b>Поиск по заметкам</b>
Используй /ask чтобы задать вопрос. AI найдёт релевантные заметки и ответит на основе твоих записей.

<i>Пример: /ask Что мы обсуждали на прошлой встрече?</i>`

	msgAskUsage     = "❓ Укажи вопрос после команды.\n\n<i>Пример: /ask Что мы обсуждали на встрече?</i>"
	msgAskSearching = "🔍 Ищу в твоих заметках..."
	msgTextSearch   = "🔍 Ищу ответ в заметках..."
	msgNoRelevant   = "😕 Не нашёл релевантных заметок. Попробуй переформулировать вопрос или добавь больше заметок."
	msgAnswer       = "💡 <b>Ответ:</b>\n\n%s"

	msgChatFreePlan = "🔒 <b>AI-чат недоступен</b>\n\n" +
		"На бесплатном плане AI-поиск по заметкам не поддерживается.\n\n" +
		"Оформите подписку Pro или Ultra, чтобы задавать вопросы по своим заметкам."
	msgChatNotAvailable = "🔒 <b>AI-чат недоступен</b>\n\n" +
		"На плане %s AI-чат не поддерживается.\n\n" +
		"Обновите подписку для доступа к этой функции."

	msgVoiceFreePlan = "🔒 <b>Голосовые заметки недоступны</b>\n\n" +
		"На бесплатном плане голосовые заметки не поддерживаются.\n\n" +
		"Оформите подписку Pro или Ultra, чтобы:\n" +
		"• Записывать голосовые заметки\n" +
		"• Получать AI-саммари\n" +
		"• Использовать AI-чат\n\n" +
		"Откройте приложение для оформления подписки 👇"
	msgVoiceLimit = "⚠️ <b>Лимит голосовых заметок исчерпан</b>\n\n" +
		"Вы достигли лимита голосовых заметок на плане %s.\n\n" +
		"Обновите подписку до Ultra для увеличения лимита или дождитесь следующего месяца."
	msgVoiceTooLarge      = "⚠️ Голосовое сообщение слишком большое."
	msgVoiceProcessing    = "🎧 Обрабатываю голосовое сообщение..."
	msgTranscribeFailed   = "❌ Не удалось транскрибировать аудио. Попробуй ещё раз."
	msgProcessingFailed   = "❌ Произошла ошибка при обработке. Попробуй позже."
	msgVoiceSaved         = "✅ <b>Заметка сохранена!</b>\n\n📝 <b>Текст:</b>\n%s\n\n"
	msgVoiceSummary       = "💡 <b>Саммари:</b>\n%s"
	msgVoiceNoSummary     = "<i>💡 AI-саммари недоступно на вашем плане</i>"

	msgNoteSaved      = "✅ Заметка сохранена!"
	msgForwardedSaved = "✅ %d сообщений сохранено как 1 заметка!"
	msgPromptAddNote  = "✏️ Отправь мне голосовое или текстовое сообщение, и я сохраню его как заметку!"

	msgOpenNotes   = "📋 Открой заметки в Mini App:"
	msgNoNotes     = "📝 У тебя пока нет заметок. Отправь голосовое или текстовое сообщение!"
	msgRecentNotes = "📋 <b>Последние заметки:</b>\n"

	msgStats = `📊 <b>Статистика заметок</b>

📝 Всего заметок: <b>%d</b>
🎤 Голосовых: <b>%d</b>
✏️ Текстовых: <b>%d</b>

📅 За эту неделю: <b>%d</b>
📆 За этот месяц: <b>%d</b>`

	msgStatusChecking = "🔄 Проверяю сервисы..."
	msgStatusHeader   = "📡 <b>Статус сервисов:</b>\n"

	msgPaymentActivated = "🎉 <b>Подписка %s активирована!</b>\n\n" +
		"Ваша подписка действует на %s.\n" +
		"Спасибо за поддержку! ❤️"
	msgPaymentActivationFailed = "⚠️ Платёж получен, но возникла ошибка при активации подписки. " +
		"Пожалуйста, свяжитесь с поддержкой."
	msgPaymentFailed = "⚠️ Произошла ошибка при обработке платежа. " +
		"Пожалуйста, свяжитесь с поддержкой."

	msgInlineDescription = "Нажми, чтобы отправить заметку"

	btnOpenNotes = "📋 Открыть заметки"
	btnOpenNote  = "📖 Открыть заметку"
)
