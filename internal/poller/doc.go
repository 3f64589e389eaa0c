// Package poller drives the periodic homework-status checks. Each cycle
// fetches statuses past the cursor, turns the newest verdict into a chat
// message, and classifies every failure into an operator notification.
// Repeated identical failures notify once; any successful verdict resets
// that suppression.
package poller
