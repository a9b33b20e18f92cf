// Package state provides a lightweight FSM/session manager for Telegram bots.
// Sessions carry arbitrary temp data and expire after a configurable idle TTL.
package state
