// Package chat holds the chat platform integration: webhook signature
// verification and the event payload types that carry shared URLs into
// the system.
package chat
