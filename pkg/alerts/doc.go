// Package alerts runs the background expiration sweep: once a day, every
// chat's pantry is classified and a digest of expired and expiring-soon
// items is sent to the chat.
package alerts
