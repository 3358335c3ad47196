package model

import "errors"

// Friendship errors. The graph deliberately has no reject, cancel or
// unfriend operation: edges are only ever created.
var (
	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends    = errors.New("already friends")
	ErrNoPendingRequest  = errors.New("no pending friend request from this user")
)
