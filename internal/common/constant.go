// Package common contains shared constants and sentinel errors used across
// todosync components.
package common

// AuthorizationHeaderName is the gRPC metadata key used to carry the
// bearer access token on outbound requests.
const AuthorizationHeaderName = "authorization"

// TodoListsCollection is the document collection holding to-do lists.
const TodoListsCollection = "todoLists"

// MinPasswordLength is the shortest password accepted on account creation.
const MinPasswordLength = 6

// OwnerField is the document field naming the owning user. When present it
// must hold the id of the user writing the document.
const OwnerField = "user"
