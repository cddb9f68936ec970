package game

import "errors"

// ErrIllegalAction is returned by Apply when an action is not in the legal
// set for the acting player. The state is left unchanged.
var ErrIllegalAction = errors.New("illegal action")

// ErrInconsistentInformationSet is returned by Determinize when the hidden
// card count does not match the hand and deck sizes an information set
// publishes. It signals a bug in information set construction, not a
// condition search should retry around.
var ErrInconsistentInformationSet = errors.New("inconsistent information set")
