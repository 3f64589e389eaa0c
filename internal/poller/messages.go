package poller

import (
	"errors"
	"fmt"

	"homeworkbot/internal/practicum"
)

// faultTemplates maps each failure class to its chat-facing text. Checked in
// order; first match wins. The wording is part of the bot's contract with
// its operator, same as the verdict texts.
var faultTemplates = []struct {
	class    error
	template string
}{
	{practicum.ErrEndpointUnreachable, "Эндпоинт Яндекс Практикума недоступен: %v"},
	{practicum.ErrEndpointServer, "Эндпоинт Яндекс Практикума не отвечает: %v"},
	{practicum.ErrEndpointRequest, "Запрос к эндпоинту Яндекс Практикума выдал ошибку: %v"},
	{practicum.ErrMalformedResponse, "Ответ содержит неожиданный тип данных: %v"},
	{practicum.ErrInvalidTimestamp, "Ответ содержит неожиданные значения: %v"},
	{practicum.ErrMalformedSubmission, "Ответ не содержит ключи: %v"},
	{practicum.ErrUnknownStatus, "Неизвестный статус домашней работы: %v"},
}

// FaultMessage renders the notification text for a failed cycle. Failures
// outside the known classes still produce a message; the loop never stays
// silent about a broken cycle.
func FaultMessage(err error) string {
	for _, t := range faultTemplates {
		if errors.Is(err, t.class) {
			return fmt.Sprintf(t.template, err)
		}
	}
	return fmt.Sprintf("Сбой в работе программы: %v", err)
}
