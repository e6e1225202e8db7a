// Package finance implements the owner-scoped account, category, transaction and upload
// operations. Every call takes the caller's user id explicitly; nothing reads ambient identity.
package finance
