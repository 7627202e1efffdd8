// Package services defines the shared error taxonomy for collaborator
// failures and maps classified errors onto session states.
package services
