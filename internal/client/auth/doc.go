// Package auth implements the client-side credential lifecycle for the
// Phoenix API: a durable token store, an expiry policy, a single-flight
// refresh coordinator, and a failure notifier that lets collaborators react
// to a dead session.
//
// All mutation of the stored credentials goes through the Manager (set,
// clear, refresh); collaborators only read. The Manager never hands out an
// access token it knows to be expired.
package auth
