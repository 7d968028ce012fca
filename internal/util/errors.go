package util

import "errors"

var (
	ErrCatalogNotFound     = errors.New("catalog not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrNoQuestions         = errors.New("no questions configured on the server")
	ErrSessionFinished     = errors.New("quiz already finished")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidSessionIndex = errors.New("invalid session index")
	ErrOrderMismatch       = errors.New("question order mismatch")
	ErrQuestionNotPrepared = errors.New("question not prepared in session")
	ErrInvalidOption       = errors.New("selected option out of range")
)
