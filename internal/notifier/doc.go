// Package notifier delivers the bot's messages to the student's chat.
//
// There are only two kinds of message: a review-status verdict and an
// operational error text. Both go through Notify, which throttles sends,
// bounds each adapter call with a timeout, and converts every failure into
// a false return. A broken Telegram channel must never stop the poll loop;
// deciding whether to re-send is the loop's business, not the notifier's.
//
// # Transport
//
// The service delegates delivery to a kit.Adapter implementation (the
// Telegram adapter in this bot). This keeps throttling policy here while the
// adapter handles platform details like message length limits.
package notifier
