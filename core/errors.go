package core

import (
	"errors"

	"github.com/ionut-t/gotext/internal/log"
)

var (
	ErrNoFileName      = errors.New("no file name")
	ErrInvalidPosition = errors.New("invalid position")
	ErrNoSearchSession = errors.New("no search session")
	ErrFileLoad        = errors.New("could not open file")
	ErrFileSave        = errors.New("could not save file")
	ErrClipboard       = errors.New("clipboard unavailable")
)

type ErrorId int

const (
	ErrNoFileNameId ErrorId = iota
	ErrInvalidPositionId
	ErrNoSearchSessionId
	ErrFileLoadId
	ErrFileSaveId
	ErrClipboardId
)

type Error struct {
	id  ErrorId
	err error
}

func (e Error) Error() string {
	return e.err.Error()
}

func (e Error) Unwrap() error {
	return e.err
}

func (e *Editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Warn(log.CatEditor, "signal channel full, dropping error", "id", id, "error", err)
	}
}
