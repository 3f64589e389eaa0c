// Package practicum talks to the Yandex Practicum homework status endpoint.
//
// The flow is split in three so each contract point fails with its own error:
// Client.FetchStatuses performs the HTTP exchange, ValidateResponse checks the
// payload shape, DescribeSubmission turns the newest record into the
// notification text.
package practicum
